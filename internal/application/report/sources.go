package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/domain/target"
	"go.uber.org/zap"
)

// Sources groups the repositories and settings every report reads from
type Sources struct {
	Products  catalog.ProductRepository
	Prices    report.TimelineSource
	Records   sales.RecordRepository
	Targets   target.Repository
	Companies identity.CompanyRepository
	Clock     shared.Clock
	Location  *time.Location
	Logger    *zap.Logger
}

func (s Sources) withDefaults() Sources {
	if s.Clock == nil {
		s.Clock = shared.SystemClock{}
	}
	if s.Location == nil {
		s.Location = time.UTC
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	return s
}

// aggregator returns an aggregator with a fresh price book. Each report
// computation must use its own.
func (s Sources) aggregator() *report.Aggregator {
	return report.NewAggregator(report.NewPriceBook(s.Prices), s.Clock, s.Location)
}

// today is the current calendar date in the business time zone
func (s Sources) today() time.Time {
	return shared.Today(s.Clock, s.Location)
}

// resolveDate parses raw, defaulting to today
func (s Sources) resolveDate(raw string) (time.Time, error) {
	if raw == "" {
		return s.today(), nil
	}
	return shared.ParseDate(raw)
}

// resolveYear defaults a zero year to the current one
func (s Sources) resolveYear(year int) int {
	if year == 0 {
		return s.today().Year()
	}
	return year
}

// companyTarget is one company's target, zero when none is set
func (s Sources) companyTarget(ctx context.Context, companyID, productID uuid.UUID, ym shared.YearMonth) (int, error) {
	t, err := s.Targets.FindForCompany(ctx, companyID, productID, ym.Year, ym.Month)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return t.Quantity, nil
}

// companyTargetSum adds up every company's target of a product
func (s Sources) companyTargetSum(ctx context.Context, productID uuid.UUID, ym shared.YearMonth) (int, error) {
	targets, err := s.Targets.FindCompanyTargets(ctx, productID, ym.Year, ym.Month)
	if err != nil {
		return 0, err
	}
	return target.SumQuantities(targets), nil
}

// requireViewAll rejects tiers that only see their own company
func requireViewAll(p identity.Principal) error {
	if !p.Tier.CanViewAll() {
		return shared.NewDomainError("FORBIDDEN", "Only headquarters and partners can view all companies")
	}
	return nil
}
