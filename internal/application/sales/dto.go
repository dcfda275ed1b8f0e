package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
)

// SaveSalesRequest writes one absolute quantity
type SaveSalesRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	SalesDate string    `json:"sales_date" binding:"required,datetime=2006-01-02"`
	Quantity  int       `json:"quantity" binding:"min=0"`
}

// BulkSalesItem is one product quantity of a bulk write
type BulkSalesItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// BulkSalesRequest writes many products of one company and date
type BulkSalesRequest struct {
	CompanyID uuid.UUID       `json:"company_id" binding:"required"`
	SalesDate string          `json:"sales_date" binding:"required,datetime=2006-01-02"`
	Items     []BulkSalesItem `json:"items" binding:"required,dive"`
}

// DeleteSalesRequest removes one record
type DeleteSalesRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	SalesDate string    `json:"sales_date" binding:"required,datetime=2006-01-02"`
}

// SalesRecordResponse represents a stored record
type SalesRecordResponse struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      uuid.UUID `json:"company_id"`
	ProductID      uuid.UUID `json:"product_id"`
	SalesDate      string    `json:"sales_date"`
	Quantity       int       `json:"quantity"`
	LastModifiedAt time.Time `json:"last_modified_at"`
	ModifiedBy     string    `json:"modified_by"`
}

// BulkItemResult reports the outcome of one bulk item
type BulkItemResult struct {
	ProductID uuid.UUID `json:"product_id"`
	Success   bool      `json:"success"`
	Quantity  int       `json:"quantity"`
	Error     string    `json:"error,omitempty"`
}

// BulkResult summarizes a bulk write
type BulkResult struct {
	Total        int              `json:"total"`
	SuccessCount int              `json:"success_count"`
	FailureCount int              `json:"failure_count"`
	Items        []BulkItemResult `json:"items"`
}

// ToSalesRecordResponse converts a domain record
func ToSalesRecordResponse(r *sales.Record) SalesRecordResponse {
	return SalesRecordResponse{
		ID:             r.ID,
		CompanyID:      r.CompanyID,
		ProductID:      r.ProductID,
		SalesDate:      r.SalesDate.Format(shared.DateLayout),
		Quantity:       r.Quantity,
		LastModifiedAt: r.LastModifiedAt,
		ModifiedBy:     r.ModifiedBy,
	}
}
