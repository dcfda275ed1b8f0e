package target

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/target"
)

// SaveTargetRequest sets one monthly target. A nil CompanyID writes the
// global target.
type SaveTargetRequest struct {
	CompanyID *uuid.UUID `json:"company_id"`
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Year      int        `json:"year" binding:"required,min=2000,max=9999"`
	Month     int        `json:"month" binding:"required,min=1,max=12"`
	Quantity  int        `json:"quantity" binding:"min=0"`
}

// BulkTargetItem is one product quantity of a bulk target write
type BulkTargetItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// BulkTargetRequest sets the targets of many products for one company, or
// the global targets when CompanyID is nil
type BulkTargetRequest struct {
	CompanyID *uuid.UUID       `json:"company_id"`
	Year      int              `json:"year" binding:"required,min=2000,max=9999"`
	Month     int              `json:"month" binding:"required,min=1,max=12"`
	Items     []BulkTargetItem `json:"items" binding:"required,dive"`
}

// TargetResponse represents a stored target
type TargetResponse struct {
	ID        uuid.UUID  `json:"id"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	ProductID uuid.UUID  `json:"product_id"`
	Year      int        `json:"year"`
	Month     int        `json:"month"`
	Quantity  int        `json:"quantity"`
	Global    bool       `json:"global"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BulkTargetResult summarizes a bulk target write
type BulkTargetResult struct {
	Total        int              `json:"total"`
	SuccessCount int              `json:"success_count"`
	FailureCount int              `json:"failure_count"`
	Saved        []TargetResponse `json:"saved"`
	Errors       []BulkItemError  `json:"errors,omitempty"`
}

// BulkItemError reports why one item was rejected
type BulkItemError struct {
	ProductID uuid.UUID `json:"product_id"`
	Error     string    `json:"error"`
}

// ReconcileResponse compares the global target with the per-company ones
type ReconcileResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	HasGlobal      bool      `json:"has_global"`
	GlobalQuantity int       `json:"global_quantity"`
	CompanySum     int       `json:"company_sum"`
	Consistent     bool      `json:"consistent"`
}

// ToTargetResponse converts a domain target
func ToTargetResponse(t *target.Target) TargetResponse {
	return TargetResponse{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		ProductID: t.ProductID,
		Year:      t.Year,
		Month:     int(t.Month),
		Quantity:  t.Quantity,
		Global:    t.IsGlobal(),
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTargetResponses converts a slice of domain targets
func ToTargetResponses(targets []target.Target) []TargetResponse {
	out := make([]TargetResponse, len(targets))
	for i := range targets {
		out[i] = ToTargetResponse(&targets[i])
	}
	return out
}
