package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Code     string `gorm:"type:varchar(4);not null;uniqueIndex:idx_products_code"`
	Name     string `gorm:"type:varchar(200);not null"`
	Category string `gorm:"type:varchar(100);not null;index:idx_products_category"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		Category:   m.Category,
		IsActive:   m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Code = p.Code
	m.Name = p.Name
	m.Category = p.Category
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from domain entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// PriceHistoryModel is the persistence model for one price interval.
// At most one row per product may have a NULL effective_to.
type PriceHistoryModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_histories_lookup,priority:1;uniqueIndex:idx_price_histories_current,where:effective_to IS NULL"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SupplyPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	EffectiveFrom time.Time       `gorm:"not null;index:idx_price_histories_lookup,priority:2"`
	EffectiveTo   *time.Time
	CreatedBy     string    `gorm:"type:varchar(50);not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PriceHistoryModel) TableName() string {
	return "price_histories"
}

// ToDomain converts the persistence model to a domain PriceHistory.
func (m *PriceHistoryModel) ToDomain() *catalog.PriceHistory {
	return &catalog.PriceHistory{
		ID:            m.ID,
		ProductID:     m.ProductID,
		CostPrice:     m.CostPrice,
		SupplyPrice:   m.SupplyPrice,
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain PriceHistory.
func (m *PriceHistoryModel) FromDomain(h *catalog.PriceHistory) {
	m.ID = h.ID
	m.ProductID = h.ProductID
	m.CostPrice = h.CostPrice
	m.SupplyPrice = h.SupplyPrice
	m.EffectiveFrom = h.EffectiveFrom.UTC()
	m.EffectiveTo = utcPtr(h.EffectiveTo)
	m.CreatedBy = h.CreatedBy
	m.CreatedAt = h.CreatedAt.UTC()
}

// PriceHistoryModelFromDomain creates a new persistence model from domain entity.
func PriceHistoryModelFromDomain(h *catalog.PriceHistory) *PriceHistoryModel {
	m := &PriceHistoryModel{}
	m.FromDomain(h)
	return m
}
