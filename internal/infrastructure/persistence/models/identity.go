package models

import (
	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
)

// CompanyModel is the persistence model for the Company domain entity.
type CompanyModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_companies_name"`
	IsParent bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *identity.Company {
	return &identity.Company{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		IsParent:   m.IsParent,
	}
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *identity.Company) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.IsParent = c.IsParent
}

// CompanyModelFromDomain creates a new persistence model from domain entity.
func CompanyModelFromDomain(c *identity.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Username     string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	CompanyID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'USER'"`
	IsPartner    bool          `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CompanyID:    m.CompanyID,
		Role:         m.Role,
		IsPartner:    m.IsPartner,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.CompanyID = u.CompanyID
	m.Role = u.Role
	m.IsPartner = u.IsPartner
}

// UserModelFromDomain creates a new persistence model from domain entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
