package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"go.uber.org/zap"
)

// StatisticsService builds the per-product statistics view
type StatisticsService struct {
	Sources
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(src Sources) *StatisticsService {
	return &StatisticsService{Sources: src.withDefaults()}
}

// viewWindows are the date ranges one view compares
type viewWindows struct {
	date      time.Time
	day       report.Window
	prevDay   report.Window
	month     report.Window
	prevMonth report.Window
}

func newViewWindows(date time.Time) viewWindows {
	w := viewWindows{date: date}
	w.day, w.prevDay = report.DailyWindows(date)
	w.month, w.prevMonth = report.MonthlyWindows(date)
	return w
}

// View returns every active product's figures for one company, or for all
// companies when q.Company is empty or "all", followed by category
// subtotals and the grand total
func (s *StatisticsService) View(ctx context.Context, p identity.Principal, q ViewQuery) (*StatisticsView, error) {
	date, err := s.resolveDate(q.Date)
	if err != nil {
		return nil, err
	}
	companyID, err := parseCompanyFilter(q.Company)
	if err != nil {
		return nil, err
	}

	view := &StatisticsView{Date: date.Format(shared.DateLayout), CompanyID: companyID, CompanyName: "전체"}
	if companyID == nil {
		if err := requireViewAll(p); err != nil {
			return nil, err
		}
	} else {
		if err := p.AuthorizeRead(*companyID); err != nil {
			return nil, err
		}
		company, err := s.Companies.FindByID(ctx, *companyID)
		if err != nil {
			return nil, err
		}
		view.CompanyName = company.Name
	}

	lines, err := s.lines(ctx, companyID, newViewWindows(date))
	if err != nil {
		return nil, err
	}
	view.Lines = report.FlattenLines(report.Assemble(lines, func(l report.Line) string { return l.Category }))

	s.Logger.Debug("statistics view built",
		zap.String("date", view.Date),
		zap.String("company", view.CompanyName),
		zap.Int("products", len(lines)),
	)
	return view, nil
}

func (s *StatisticsService) lines(ctx context.Context, companyID *uuid.UUID, w viewWindows) ([]report.Line, error) {
	products, err := s.Products.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.Records.FindByCriteria(ctx, sales.Criteria{
		CompanyID: companyID,
		From:      w.prevMonth.From,
		To:        w.date,
	})
	if err != nil {
		return nil, err
	}

	var names map[uuid.UUID]string
	if companyID == nil {
		if names, err = s.companyNames(ctx); err != nil {
			return nil, err
		}
	}

	agg := s.aggregator()
	grouped := byProduct(records)
	lines := make([]report.Line, 0, len(products))
	for i := range products {
		line, err := s.line(ctx, agg, &products[i], grouped[products[i].ID], companyID, names, w)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *StatisticsService) line(
	ctx context.Context,
	agg *report.Aggregator,
	product *catalog.Product,
	records []sales.Record,
	companyID *uuid.UUID,
	names map[uuid.UUID]string,
	w viewWindows,
) (report.Line, error) {
	today := within(records, w.day)
	daily, err := agg.Summarize(ctx, today)
	if err != nil {
		return report.Line{}, err
	}
	prevDay, err := agg.Summarize(ctx, within(records, w.prevDay))
	if err != nil {
		return report.Line{}, err
	}
	monthly, err := agg.Summarize(ctx, within(records, w.month))
	if err != nil {
		return report.Line{}, err
	}
	prevMonth, err := agg.Summarize(ctx, within(records, w.prevMonth))
	if err != nil {
		return report.Line{}, err
	}

	line := report.Line{
		ProductRef:   productRef(product),
		Daily:        daily,
		DailyDelta:   report.NewDelta(prevDay.Profit, daily.Profit),
		Monthly:      monthly,
		MonthlyDelta: report.NewDelta(prevMonth.Profit, monthly.Profit),
		TargetMonth:  w.date.Month(),
	}

	price, err := agg.PriceOn(ctx, product.ID, w.date)
	if err != nil {
		return report.Line{}, err
	}
	if price != nil {
		cost, supply := price.CostPrice, price.SupplyPrice
		line.CostPrice, line.SupplyPrice = &cost, &supply
	}

	ym := shared.YearMonthOf(w.date)
	if companyID != nil {
		line.TargetQuantity, err = s.companyTarget(ctx, *companyID, product.ID, ym)
	} else {
		line.TargetQuantity, err = s.companyTargetSum(ctx, product.ID, ym)
	}
	if err != nil {
		return report.Line{}, err
	}

	if latest := sales.LatestModified(today); latest != nil {
		at := latest.LastModifiedAt
		line.LastModifiedAt, line.ModifiedBy = &at, latest.ModifiedBy
	}

	if companyID == nil {
		if line.Companies, err = breakdown(ctx, agg, today, names); err != nil {
			return report.Line{}, err
		}
	}
	return line.Finish(), nil
}

// breakdown splits one product's daily records by company, ordered by name
func breakdown(ctx context.Context, agg *report.Aggregator, records []sales.Record, names map[uuid.UUID]string) ([]report.CompanyFigures, error) {
	grouped := byCompany(records)
	out := make([]report.CompanyFigures, 0, len(grouped))
	for companyID, recs := range grouped {
		fig, err := agg.Summarize(ctx, recs)
		if err != nil {
			return nil, err
		}
		cf := report.CompanyFigures{
			CompanyID:   companyID,
			CompanyName: names[companyID],
			Figures:     fig,
		}
		if latest := sales.LatestModified(recs); latest != nil {
			at := latest.LastModifiedAt
			cf.LastModifiedAt, cf.ModifiedBy = &at, latest.ModifiedBy
		}
		out = append(out, cf)
	}
	shared.SortByName(out, func(cf report.CompanyFigures) string { return cf.CompanyName })
	return out, nil
}

func (s *StatisticsService) companyNames(ctx context.Context) (map[uuid.UUID]string, error) {
	companies, err := s.Companies.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	return names, nil
}

func parseCompanyFilter(raw string) (*uuid.UUID, error) {
	if raw == "" || raw == CompanyAll {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.InvalidInput("company must be \"all\" or a company ID")
	}
	return &id, nil
}
