package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceHistory is one effective-dated price of a product, valid over the
// half-open interval [EffectiveFrom, EffectiveTo). A nil EffectiveTo marks
// the current price.
type PriceHistory struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	CostPrice     decimal.Decimal
	SupplyPrice   decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedBy     string
	CreatedAt     time.Time
}

// NewInitialPrice opens the first price interval of a product at now
func NewInitialPrice(productID uuid.UUID, cost, supply decimal.Decimal, actor string, now time.Time) (*PriceHistory, error) {
	if err := validatePrices(cost, supply); err != nil {
		return nil, err
	}
	return &PriceHistory{
		ID:            uuid.New(),
		ProductID:     productID,
		CostPrice:     cost,
		SupplyPrice:   supply,
		EffectiveFrom: now,
		CreatedBy:     actor,
		CreatedAt:     now,
	}, nil
}

// IsCurrent reports whether the interval is still open
func (h *PriceHistory) IsCurrent() bool {
	return h.EffectiveTo == nil
}

// Covers reports whether t falls inside [EffectiveFrom, EffectiveTo)
func (h *PriceHistory) Covers(t time.Time) bool {
	if t.Before(h.EffectiveFrom) {
		return false
	}
	return h.EffectiveTo == nil || t.Before(*h.EffectiveTo)
}

// Margin is supply minus cost
func (h *PriceHistory) Margin() decimal.Decimal {
	return h.SupplyPrice.Sub(h.CostPrice)
}

// Succeed closes h at now and returns the interval that replaces it.
// A nil cost or supply carries the current value forward.
func (h *PriceHistory) Succeed(cost, supply *decimal.Decimal, actor string, now time.Time) (*PriceHistory, error) {
	if !h.IsCurrent() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only the current price can be superseded")
	}
	if now.Before(h.EffectiveFrom) {
		return nil, shared.NewDomainError("INVALID_STATE", "New price cannot start before the current one")
	}

	nextCost := h.CostPrice
	if cost != nil {
		nextCost = *cost
	}
	nextSupply := h.SupplyPrice
	if supply != nil {
		nextSupply = *supply
	}
	if err := validatePrices(nextCost, nextSupply); err != nil {
		return nil, err
	}

	closedAt := now
	h.EffectiveTo = &closedAt

	return &PriceHistory{
		ID:            uuid.New(),
		ProductID:     h.ProductID,
		CostPrice:     nextCost,
		SupplyPrice:   nextSupply,
		EffectiveFrom: now,
		CreatedBy:     actor,
		CreatedAt:     now,
	}, nil
}

// PriceTimeline is the full price history of one product ordered by
// EffectiveFrom ascending.
type PriceTimeline []PriceHistory

// At returns the record covering t, or nil when none does
func (tl PriceTimeline) At(t time.Time) *PriceHistory {
	for i := len(tl) - 1; i >= 0; i-- {
		if tl[i].Covers(t) {
			return &tl[i]
		}
	}
	return nil
}

// Current returns the open record, or nil
func (tl PriceTimeline) Current() *PriceHistory {
	for i := len(tl) - 1; i >= 0; i-- {
		if tl[i].IsCurrent() {
			return &tl[i]
		}
	}
	return nil
}

func validatePrices(cost, supply decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if supply.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Supply price cannot be negative")
	}
	return nil
}
