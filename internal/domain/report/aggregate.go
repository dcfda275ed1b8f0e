package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Totals is a quantity with its price-weighted amount
type Totals struct {
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// Plus sums two totals
func (t Totals) Plus(o Totals) Totals {
	return Totals{Quantity: t.Quantity + o.Quantity, Amount: t.Amount.Add(o.Amount)}
}

// Figures extends Totals with profit
type Figures struct {
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Profit   decimal.Decimal `json:"profit"`
}

// Plus sums two figure sets
func (f Figures) Plus(o Figures) Figures {
	return Figures{
		Quantity: f.Quantity + o.Quantity,
		Amount:   f.Amount.Add(o.Amount),
		Profit:   f.Profit.Add(o.Profit),
	}
}

// Totals drops the profit
func (f Figures) Totals() Totals {
	return Totals{Quantity: f.Quantity, Amount: f.Amount}
}

// ProfitRate is profit over amount as a percentage
func (f Figures) ProfitRate() decimal.Decimal {
	return ProfitRate(f.Profit, f.Amount)
}

// Aggregator values sales records at the price effective on each record's
// date. A record without a covering price still counts toward quantity
// but adds nothing to amount or profit.
type Aggregator struct {
	prices   PriceLookup
	clock    shared.Clock
	location *time.Location
}

// NewAggregator creates an aggregator pricing dates in loc
func NewAggregator(prices PriceLookup, clock shared.Clock, loc *time.Location) *Aggregator {
	return &Aggregator{prices: prices, clock: clock, location: loc}
}

// QueryInstant returns the pricing instant for a sales date
func (a *Aggregator) QueryInstant(date time.Time) time.Time {
	return QueryInstant(date, a.clock.Now(), a.location)
}

// PriceOn returns the price used for date, or nil when none applies
func (a *Aggregator) PriceOn(ctx context.Context, productID uuid.UUID, date time.Time) (*catalog.PriceHistory, error) {
	h, err := a.prices.FindEffectiveAt(ctx, productID, a.QueryInstant(date))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return h, nil
}

// SumQuantityAndAmount returns Σ quantity and Σ quantity × supply price
func (a *Aggregator) SumQuantityAndAmount(ctx context.Context, records []sales.Record) (Totals, error) {
	f, err := a.Summarize(ctx, records)
	if err != nil {
		return Totals{}, err
	}
	return f.Totals(), nil
}

// SumProfit returns Σ quantity × (supply price − cost price)
func (a *Aggregator) SumProfit(ctx context.Context, records []sales.Record) (decimal.Decimal, error) {
	f, err := a.Summarize(ctx, records)
	if err != nil {
		return decimal.Zero, err
	}
	return f.Profit, nil
}

// Summarize computes quantity, amount and profit in one pass
func (a *Aggregator) Summarize(ctx context.Context, records []sales.Record) (Figures, error) {
	var f Figures
	for _, r := range records {
		f.Quantity += r.Quantity
		if r.Quantity == 0 {
			continue
		}
		price, err := a.PriceOn(ctx, r.ProductID, r.SalesDate)
		if err != nil {
			return Figures{}, err
		}
		if price == nil {
			continue
		}
		qty := decimal.NewFromInt(int64(r.Quantity))
		f.Amount = f.Amount.Add(price.SupplyPrice.Mul(qty))
		f.Profit = f.Profit.Add(price.Margin().Mul(qty))
	}
	return f, nil
}
