package target

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/shared"
)

// Target is a monthly quantity goal for a product. A nil CompanyID makes
// it the global target that the per-company targets are expected to add
// up to.
type Target struct {
	shared.BaseEntity
	CompanyID *uuid.UUID
	ProductID uuid.UUID
	Year      int
	Month     time.Month
	Quantity  int
}

// NewTarget creates a target; companyID may be nil for a global target
func NewTarget(companyID *uuid.UUID, productID uuid.UUID, period shared.YearMonth, quantity int, now time.Time) (*Target, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	return &Target{
		BaseEntity: shared.NewBaseEntityAt(now),
		CompanyID:  companyID,
		ProductID:  productID,
		Year:       period.Year,
		Month:      period.Month,
		Quantity:   quantity,
	}, nil
}

// IsGlobal reports whether the target has no company
func (t *Target) IsGlobal() bool {
	return t.CompanyID == nil
}

// Period returns the target's month
func (t *Target) Period() shared.YearMonth {
	return shared.YearMonth{Year: t.Year, Month: t.Month}
}

// SetQuantity overwrites the target quantity
func (t *Target) SetQuantity(quantity int, now time.Time) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	t.Quantity = quantity
	t.Touch(now)
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Target quantity cannot be negative")
	}
	return nil
}

// SumQuantities adds up target quantities
func SumQuantities(targets []Target) int {
	total := 0
	for _, t := range targets {
		total += t.Quantity
	}
	return total
}

// Reconcile reports whether the per-company targets add up to the global
// target. Without a global target there is nothing to disagree with.
func Reconcile(global *Target, companyTargets []Target) bool {
	if global == nil {
		return true
	}
	return global.Quantity == SumQuantities(companyTargets)
}
