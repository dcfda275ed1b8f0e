package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
)

const (
	// maxPeriods bounds how many ranges one period comparison accepts
	maxPeriods = 6
	// maxPeriodDays bounds the length of one compared range
	maxPeriodDays = 366
)

// ComparisonService builds the monthly, yearly, period and product comparisons
type ComparisonService struct {
	Sources
}

// NewComparisonService creates a new ComparisonService
func NewComparisonService(src Sources) *ComparisonService {
	return &ComparisonService{Sources: src.withDefaults()}
}

// ===================== Monthly =====================

// Monthly returns twelve months of quantity and amount per active product
// for a year, grouped by category with subtotals and a grand total. A nil
// company covers every company.
func (s *ComparisonService) Monthly(ctx context.Context, p identity.Principal, q MonthlyQuery) (*report.MonthlyComparison, error) {
	if q.CompanyID == nil {
		if err := requireViewAll(p); err != nil {
			return nil, err
		}
	} else if err := p.AuthorizeRead(*q.CompanyID); err != nil {
		return nil, err
	}
	year := s.resolveYear(q.Year)

	products, err := s.Products.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	yw := report.YearWindow(year)
	records, err := s.Records.FindByCriteria(ctx, sales.Criteria{CompanyID: q.CompanyID, From: yw.From, To: yw.To})
	if err != nil {
		return nil, err
	}

	agg := s.aggregator()
	grouped := byProduct(records)
	rows := make([]report.MonthlyRow, 0, len(products))
	for i := range products {
		row := report.MonthlyRow{Kind: report.RowProduct, ProductRef: productRef(&products[i])}
		recs := grouped[products[i].ID]
		for m := time.January; m <= time.December; m++ {
			t, err := agg.SumQuantityAndAmount(ctx, within(recs, report.MonthWindow(shared.YearMonth{Year: year, Month: m})))
			if err != nil {
				return nil, err
			}
			row.Add(m, t)
		}
		rows = append(rows, row)
	}

	return &report.MonthlyComparison{
		Year:      year,
		CompanyID: q.CompanyID,
		Rows:      report.FlattenMonthly(report.Assemble(rows, func(r report.MonthlyRow) string { return r.Category })),
	}, nil
}

// CompanyMonthly is the monthly comparison of the caller's own company
func (s *ComparisonService) CompanyMonthly(ctx context.Context, p identity.Principal, year int) (*report.MonthlyComparison, error) {
	companyID := p.CompanyID
	return s.Monthly(ctx, p, MonthlyQuery{Year: year, CompanyID: &companyID})
}

// ===================== Yearly =====================

// Yearly compares three consecutive years per active product. Either bound
// may be omitted; the window ends at the current year when both are.
// Growth compares the amounts of the last two years.
func (s *ComparisonService) Yearly(ctx context.Context, p identity.Principal, q YearlyQuery) (*report.YearlyComparison, error) {
	if err := requireViewAll(p); err != nil {
		return nil, err
	}
	end := q.EndYear
	if end == 0 {
		end = s.resolveYear(0)
		if q.StartYear != 0 {
			end = q.StartYear + 2
		}
	}
	start := q.StartYear
	if start == 0 {
		start = end - 2
	}
	if end-start != 2 {
		return nil, shared.InvalidInput("start_year and end_year must span three consecutive years")
	}
	years := [3]int{start, start + 1, end}

	products, err := s.Products.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.Records.FindByCriteria(ctx, sales.Criteria{
		From: report.YearWindow(start).From,
		To:   report.YearWindow(end).To,
	})
	if err != nil {
		return nil, err
	}

	agg := s.aggregator()
	grouped := byProduct(records)
	rows := make([]report.YearlyRow, 0, len(products))
	for i := range products {
		row := report.YearlyRow{Kind: report.RowProduct, ProductRef: productRef(&products[i])}
		recs := grouped[products[i].ID]
		for j, y := range years {
			if row.Years[j], err = agg.SumQuantityAndAmount(ctx, within(recs, report.YearWindow(y))); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row.Finish())
	}

	return &report.YearlyComparison{
		Years: years,
		Rows:  report.FlattenYearly(report.Assemble(rows, func(r report.YearlyRow) string { return r.Category })),
	}, nil
}

// ===================== Period =====================

// Period lists every day of each requested range with its quantity and
// amount, days without sales included
func (s *ComparisonService) Period(ctx context.Context, p identity.Principal, req PeriodRequest) (*report.PeriodComparison, error) {
	if err := requireViewAll(p); err != nil {
		return nil, err
	}
	windows, err := parsePeriods(req.Periods)
	if err != nil {
		return nil, err
	}
	name, err := s.productLabel(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	agg := s.aggregator()
	out := &report.PeriodComparison{ProductID: req.ProductID, ProductName: name}
	for _, w := range windows {
		records, err := s.Records.FindByCriteria(ctx, sales.Criteria{ProductID: req.ProductID, From: w.From, To: w.To})
		if err != nil {
			return nil, err
		}
		byDate := make(map[string][]sales.Record)
		for _, r := range records {
			key := r.SalesDate.Format(shared.DateLayout)
			byDate[key] = append(byDate[key], r)
		}

		series := report.PeriodSeries{Window: w, Days: make([]report.DayFigures, 0, w.Days())}
		var dayErr error
		shared.EachDay(w.From, w.To, func(d time.Time) {
			if dayErr != nil {
				return
			}
			t, err := agg.SumQuantityAndAmount(ctx, byDate[d.Format(shared.DateLayout)])
			if err != nil {
				dayErr = err
				return
			}
			series.Days = append(series.Days, report.DayFigures{Date: d, Totals: t})
			series.Total = series.Total.Plus(t)
		})
		if dayErr != nil {
			return nil, dayErr
		}
		out.Periods = append(out.Periods, series)
	}
	return out, nil
}

func parsePeriods(inputs []PeriodInput) ([]report.Window, error) {
	if len(inputs) == 0 {
		return nil, shared.InvalidInput("at least one period is required")
	}
	if len(inputs) > maxPeriods {
		return nil, shared.InvalidInput(fmt.Sprintf("at most %d periods can be compared", maxPeriods))
	}
	windows := make([]report.Window, len(inputs))
	for i, in := range inputs {
		from, err := shared.ParseDate(in.From)
		if err != nil {
			return nil, err
		}
		to, err := shared.ParseDate(in.To)
		if err != nil {
			return nil, err
		}
		w := report.Window{From: from, To: to}
		if to.Before(from) {
			return nil, shared.InvalidInput(fmt.Sprintf("period %d ends before it starts", i+1))
		}
		if w.Days() > maxPeriodDays {
			return nil, shared.InvalidInput(fmt.Sprintf("period %d exceeds %d days", i+1, maxPeriodDays))
		}
		windows[i] = w
	}
	return windows, nil
}

// ===================== Product =====================

// Product compares the given year with the two before it month by month
// for one product, or for every product when q.ProductID is nil
func (s *ComparisonService) Product(ctx context.Context, p identity.Principal, q ProductQuery) (*report.ProductComparison, error) {
	if err := requireViewAll(p); err != nil {
		return nil, err
	}
	current := s.resolveYear(q.Year)
	name, err := s.productLabel(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}

	records, err := s.Records.FindByCriteria(ctx, sales.Criteria{
		ProductID: q.ProductID,
		From:      report.YearWindow(current - 2).From,
		To:        report.YearWindow(current).To,
	})
	if err != nil {
		return nil, err
	}

	agg := s.aggregator()
	out := &report.ProductComparison{ProductID: q.ProductID, ProductName: name}
	for y := current - 2; y <= current; y++ {
		py := report.ProductYear{Year: y}
		for m := time.January; m <= time.December; m++ {
			t, err := agg.SumQuantityAndAmount(ctx, within(records, report.MonthWindow(shared.YearMonth{Year: y, Month: m})))
			if err != nil {
				return nil, err
			}
			py.Months[m-1] = t
			py.Total = py.Total.Plus(t)
		}
		out.Years = append(out.Years, py)
	}

	prev, cur := out.Years[1], out.Years[2]
	for i := range out.MonthlyGrowth {
		out.MonthlyGrowth[i] = report.GrowthRate(prev.Months[i].Amount, cur.Months[i].Amount)
	}
	out.TotalGrowthRate = report.GrowthRate(prev.Total.Amount, cur.Total.Amount)
	return out, nil
}

// productLabel names the compared product, or every product when id is nil
func (s *ComparisonService) productLabel(ctx context.Context, id *uuid.UUID) (string, error) {
	if id == nil {
		return report.AllProductsLabel, nil
	}
	product, err := s.Products.FindByID(ctx, *id)
	if err != nil {
		return "", err
	}
	return product.Name, nil
}
