package report

import (
	"context"
	"slices"
	"strings"

	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"go.uber.org/zap"
)

// BoardLayout arranges the company columns of the daily status board
type BoardLayout struct {
	// Order lists company name prefixes in column order. Companies that
	// match no prefix follow in dictionary order.
	Order []string
	// Excluded names companies left off the board
	Excluded []string
}

// Arrange filters and orders companies for display
func (l BoardLayout) Arrange(companies []identity.Company) []identity.Company {
	out := make([]identity.Company, 0, len(companies))
	for _, c := range companies {
		if !slices.Contains(l.Excluded, c.Name) {
			out = append(out, c)
		}
	}
	shared.SortByName(out, func(c identity.Company) string { return c.Name })
	slices.SortStableFunc(out, func(a, b identity.Company) int {
		return l.rank(a.Name) - l.rank(b.Name)
	})
	return out
}

func (l BoardLayout) rank(name string) int {
	for i, prefix := range l.Order {
		if strings.HasPrefix(name, prefix) {
			return i
		}
	}
	return len(l.Order)
}

// DailyStatusService builds the daily status board
type DailyStatusService struct {
	Sources
	layout BoardLayout
}

// NewDailyStatusService creates a new DailyStatusService
func NewDailyStatusService(src Sources, layout BoardLayout) *DailyStatusService {
	return &DailyStatusService{Sources: src.withDefaults(), layout: layout}
}

// statusWindows are the date ranges the board reads
type statusWindows struct {
	date              report.Window
	monthToDate       report.Window
	prevMonth         report.Window
	lastYearMonth     report.Window
	lastYearPrevMonth report.Window
}

// Status returns, per active product, each subsidiary's daily and
// month-to-date sales with totals, the summed company targets and the
// previous-month and last-year quantities
func (s *DailyStatusService) Status(ctx context.Context, p identity.Principal, q DailyStatusQuery) (*report.DailyStatus, error) {
	if err := requireViewAll(p); err != nil {
		return nil, err
	}
	date, err := s.resolveDate(q.Date)
	if err != nil {
		return nil, err
	}

	subsidiaries, err := s.Companies.FindSubsidiaries(ctx)
	if err != nil {
		return nil, err
	}
	companies := s.layout.Arrange(subsidiaries)

	products, err := s.Products.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	sortForBoard(products)

	ym := shared.YearMonthOf(date)
	lastYear := shared.YearMonth{Year: ym.Year - 1, Month: ym.Month}
	w := statusWindows{
		date:              report.Window{From: date, To: date},
		monthToDate:       report.MonthToDate(date),
		prevMonth:         report.MonthWindow(ym.Previous()),
		lastYearMonth:     report.MonthWindow(lastYear),
		lastYearPrevMonth: report.MonthWindow(lastYear.Previous()),
	}

	recent, err := s.Records.FindByCriteria(ctx, sales.Criteria{From: w.prevMonth.From, To: date})
	if err != nil {
		return nil, err
	}
	past, err := s.Records.FindByCriteria(ctx, sales.Criteria{From: w.lastYearPrevMonth.From, To: w.lastYearMonth.To})
	if err != nil {
		return nil, err
	}
	recentByProduct, pastByProduct := byProduct(recent), byProduct(past)

	status := &report.DailyStatus{Date: date, Companies: make([]string, len(companies))}
	for i, c := range companies {
		status.Companies[i] = c.Name
	}

	agg := s.aggregator()
	for i := range products {
		row, err := s.row(ctx, agg, &products[i], companies, recentByProduct[products[i].ID], pastByProduct[products[i].ID], w)
		if err != nil {
			return nil, err
		}
		status.Rows = append(status.Rows, row)
	}

	s.Logger.Info("daily status built",
		zap.String("date", date.Format(shared.DateLayout)),
		zap.Int("companies", len(companies)),
		zap.Int("products", len(products)),
	)
	return status, nil
}

func (s *DailyStatusService) row(
	ctx context.Context,
	agg *report.Aggregator,
	product *catalog.Product,
	companies []identity.Company,
	recent, past []sales.Record,
	w statusWindows,
) (report.DailyStatusRow, error) {
	row := report.DailyStatusRow{
		ProductRef: productRef(product),
		Companies:  make([]report.DailyStatusCell, 0, len(companies)),
	}

	price, err := agg.PriceOn(ctx, product.ID, w.date.From)
	if err != nil {
		return row, err
	}
	if price != nil {
		row.SupplyPrice = price.SupplyPrice
	}

	perCompany := byCompany(recent)
	for _, c := range companies {
		recs := perCompany[c.ID]
		day, err := agg.SumQuantityAndAmount(ctx, within(recs, w.date))
		if err != nil {
			return row, err
		}
		month, err := agg.SumQuantityAndAmount(ctx, within(recs, w.monthToDate))
		if err != nil {
			return row, err
		}
		row.Companies = append(row.Companies, report.DailyStatusCell{
			CompanyID:       c.ID,
			CompanyName:     c.Name,
			DailyQuantity:   day.Quantity,
			MonthlyQuantity: month.Quantity,
			MonthlyAmount:   month.Amount,
		})
		row.DailyTotal = row.DailyTotal.Plus(day)
		row.MonthlyTotal = row.MonthlyTotal.Plus(month)
	}

	row.TargetQuantity, err = s.companyTargetSum(ctx, product.ID, shared.YearMonthOf(w.date.From))
	if err != nil {
		return row, err
	}

	row.PreviousMonthQuantity = sales.TotalQuantity(within(recent, w.prevMonth))
	row.TwoMonthQuantity = row.PreviousMonthQuantity + sales.TotalQuantity(within(recent, w.monthToDate))
	row.LastYearPreviousMonthQuantity = sales.TotalQuantity(within(past, w.lastYearPrevMonth))
	row.LastYearMonthQuantity = sales.TotalQuantity(within(past, w.lastYearMonth))
	row.LastYearTwoMonthQuantity = row.LastYearPreviousMonthQuantity + row.LastYearMonthQuantity
	return row, nil
}

// sortForBoard orders products by category descending, then name
func sortForBoard(products []catalog.Product) {
	cmp := shared.NameComparer()
	slices.SortStableFunc(products, func(a, b catalog.Product) int {
		if c := cmp(b.Category, a.Category); c != 0 {
			return c
		}
		return cmp(a.Name, b.Name)
	})
}
