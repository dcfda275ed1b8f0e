package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	CostPrice   decimal.Decimal `json:"cost_price" binding:"required"`
	SupplyPrice decimal.Decimal `json:"supply_price" binding:"required"`
}

// UpdatePriceRequest changes one or both prices. A nil field keeps the
// current value.
type UpdatePriceRequest struct {
	CostPrice   *decimal.Decimal `json:"cost_price"`
	SupplyPrice *decimal.Decimal `json:"supply_price"`
}

// ProductResponse represents a product with its current prices
type ProductResponse struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	IsActive    bool             `json:"is_active"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	SupplyPrice *decimal.Decimal `json:"supply_price"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// PriceResponse represents one price interval
type PriceResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SupplyPrice   decimal.Decimal `json:"supply_price"`
	EffectiveFrom time.Time       `json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to"`
	IsCurrent     bool            `json:"is_current"`
	CreatedBy     string          `json:"created_by"`
}

// InputItem is one product row of the daily input sheet
type InputItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

// InputCategory groups the input sheet by category
type InputCategory struct {
	Category string      `json:"category"`
	Items    []InputItem `json:"items"`
}

// ToProductResponse converts a product and its current price, which may be nil
func ToProductResponse(p *catalog.Product, current *catalog.PriceHistory) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Category:  p.Category,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if current != nil {
		cost, supply := current.CostPrice, current.SupplyPrice
		resp.CostPrice = &cost
		resp.SupplyPrice = &supply
	}
	return resp
}

// ToPriceResponse converts a price interval
func ToPriceResponse(h *catalog.PriceHistory) PriceResponse {
	return PriceResponse{
		ID:            h.ID,
		ProductID:     h.ProductID,
		CostPrice:     h.CostPrice,
		SupplyPrice:   h.SupplyPrice,
		EffectiveFrom: h.EffectiveFrom,
		EffectiveTo:   h.EffectiveTo,
		IsCurrent:     h.IsCurrent(),
		CreatedBy:     h.CreatedBy,
	}
}
