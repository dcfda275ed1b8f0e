package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/shared"
)

// PriceLookup answers "what was the price of a product at an instant".
// Implementations return shared.ErrNotFound when no record covers it.
type PriceLookup interface {
	FindEffectiveAt(ctx context.Context, productID uuid.UUID, at time.Time) (*catalog.PriceHistory, error)
}

// TimelineSource loads a product's full price history
type TimelineSource interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) (catalog.PriceTimeline, error)
}

// QueryInstant is the instant at which a sales date is priced: the current
// moment when date is today in loc, otherwise 23:59:59 of that date in loc.
// Today's running totals follow the latest price while past days stay
// frozen at their end-of-day price.
func QueryInstant(date, now time.Time, loc *time.Location) time.Time {
	today := shared.DateOf(now.In(loc))
	day := shared.DateOf(date)
	if day.Equal(today) {
		return now
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc)
}

// PriceBook memoizes whole price timelines for the lifetime of one report
// computation. It is not safe for concurrent use and must not outlive the
// request that created it.
type PriceBook struct {
	source    TimelineSource
	timelines map[uuid.UUID]catalog.PriceTimeline
}

// NewPriceBook creates an empty book backed by source
func NewPriceBook(source TimelineSource) *PriceBook {
	return &PriceBook{
		source:    source,
		timelines: make(map[uuid.UUID]catalog.PriceTimeline),
	}
}

// FindEffectiveAt implements PriceLookup
func (b *PriceBook) FindEffectiveAt(ctx context.Context, productID uuid.UUID, at time.Time) (*catalog.PriceHistory, error) {
	tl, ok := b.timelines[productID]
	if !ok {
		loaded, err := b.source.FindByProduct(ctx, productID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		tl = loaded
		b.timelines[productID] = tl
	}
	h := tl.At(at)
	if h == nil {
		return nil, shared.NotFound("Price")
	}
	return h, nil
}

var _ PriceLookup = (*PriceBook)(nil)
