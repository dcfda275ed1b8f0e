package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
)

// SalesRecordModel is the persistence model for a daily sales record.
type SalesRecordModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sales_records_key,priority:1"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sales_records_key,priority:2;index:idx_sales_records_product_date,priority:1"`
	SalesDate      time.Time `gorm:"type:date;not null;uniqueIndex:idx_sales_records_key,priority:3;index:idx_sales_records_product_date,priority:2"`
	Quantity       int       `gorm:"not null;default:0"`
	LastModifiedAt time.Time `gorm:"not null"`
	ModifiedBy     string    `gorm:"type:varchar(50);not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesRecordModel) TableName() string {
	return "sales_records"
}

// ToDomain converts the persistence model to a domain Record.
func (m *SalesRecordModel) ToDomain() *sales.Record {
	return &sales.Record{
		ID:             m.ID,
		CompanyID:      m.CompanyID,
		ProductID:      m.ProductID,
		SalesDate:      shared.DateOf(m.SalesDate),
		Quantity:       m.Quantity,
		LastModifiedAt: m.LastModifiedAt,
		ModifiedBy:     m.ModifiedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Record.
func (m *SalesRecordModel) FromDomain(r *sales.Record) {
	m.ID = r.ID
	m.CompanyID = r.CompanyID
	m.ProductID = r.ProductID
	m.SalesDate = shared.DateOf(r.SalesDate)
	m.Quantity = r.Quantity
	m.LastModifiedAt = r.LastModifiedAt.UTC()
	m.ModifiedBy = r.ModifiedBy
	m.CreatedAt = r.CreatedAt.UTC()
}

// SalesRecordModelFromDomain creates a new persistence model from domain entity.
func SalesRecordModelFromDomain(r *sales.Record) *SalesRecordModel {
	m := &SalesRecordModel{}
	m.FromDomain(r)
	return m
}
