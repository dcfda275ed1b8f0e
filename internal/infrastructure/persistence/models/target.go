package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/target"
)

// TargetModel is the persistence model for a monthly target. Company
// targets are unique per (company, product, year, month); global targets,
// with a NULL company, are unique per (product, year, month).
type TargetModel struct {
	BaseModel
	CompanyID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_targets_company_key,priority:1"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_targets_company_key,priority:2;uniqueIndex:idx_targets_global_key,priority:1,where:company_id IS NULL"`
	Year      int        `gorm:"not null;uniqueIndex:idx_targets_company_key,priority:3;uniqueIndex:idx_targets_global_key,priority:2,where:company_id IS NULL"`
	Month     int        `gorm:"not null;uniqueIndex:idx_targets_company_key,priority:4;uniqueIndex:idx_targets_global_key,priority:3,where:company_id IS NULL"`
	Quantity  int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TargetModel) TableName() string {
	return "targets"
}

// ToDomain converts the persistence model to a domain Target.
func (m *TargetModel) ToDomain() *target.Target {
	return &target.Target{
		BaseEntity: m.BaseModel.ToDomain(),
		CompanyID:  m.CompanyID,
		ProductID:  m.ProductID,
		Year:       m.Year,
		Month:      time.Month(m.Month),
		Quantity:   m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain Target.
func (m *TargetModel) FromDomain(t *target.Target) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.CompanyID = t.CompanyID
	m.ProductID = t.ProductID
	m.Year = t.Year
	m.Month = int(t.Month)
	m.Quantity = t.Quantity
}

// TargetModelFromDomain creates a new persistence model from domain entity.
func TargetModelFromDomain(t *target.Target) *TargetModel {
	m := &TargetModel{}
	m.FromDomain(t)
	return m
}
