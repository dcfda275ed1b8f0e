package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RowKind distinguishes product rows from subtotal and grand-total pseudo-rows
type RowKind string

const (
	RowProduct  RowKind = "product"
	RowSubtotal RowKind = "subtotal"
	RowTotal    RowKind = "total"
)

// ProductRef identifies the product a row describes
type ProductRef struct {
	ProductID   uuid.UUID `json:"product_id,omitempty"`
	Category    string    `json:"category"`
	ProductCode string    `json:"product_code,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
}

// CompanyFigures is one company's share of a product's daily sales
type CompanyFigures struct {
	CompanyID      uuid.UUID  `json:"company_id"`
	CompanyName    string     `json:"company_name"`
	Figures        Figures    `json:"figures"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`
	ModifiedBy     string     `json:"modified_by,omitempty"`
}

// Line is a row of the statistics view: a product's day and month-to-date
// figures with comparisons, target and achievement.
type Line struct {
	Kind  RowKind `json:"kind"`
	Label string  `json:"label,omitempty"`
	ProductRef

	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	SupplyPrice *decimal.Decimal `json:"supply_price,omitempty"`

	Daily             Figures         `json:"daily"`
	DailyProfitRate   decimal.Decimal `json:"daily_profit_rate"`
	DailyDelta        Delta           `json:"daily_delta"`
	Monthly           Figures         `json:"monthly"`
	MonthlyProfitRate decimal.Decimal `json:"monthly_profit_rate"`
	MonthlyDelta      Delta           `json:"monthly_delta"`

	TargetMonth     time.Month      `json:"target_month,omitempty"`
	TargetQuantity  int             `json:"target_quantity"`
	AchievementRate decimal.Decimal `json:"achievement_rate"`

	LastModifiedAt *time.Time       `json:"last_modified_at,omitempty"`
	ModifiedBy     string           `json:"modified_by,omitempty"`
	Companies      []CompanyFigures `json:"companies,omitempty"`
}

// Plus folds o into l. Rates are recomputed from the sums.
func (l Line) Plus(o Line) Line {
	sum := Line{
		Daily:          l.Daily.Plus(o.Daily),
		DailyDelta:     l.DailyDelta.Plus(o.DailyDelta),
		Monthly:        l.Monthly.Plus(o.Monthly),
		MonthlyDelta:   l.MonthlyDelta.Plus(o.MonthlyDelta),
		TargetMonth:    o.TargetMonth,
		TargetQuantity: l.TargetQuantity + o.TargetQuantity,
	}
	return sum.withRates()
}

func (l Line) withRates() Line {
	l.DailyProfitRate = l.Daily.ProfitRate()
	l.MonthlyProfitRate = l.Monthly.ProfitRate()
	l.AchievementRate = AchievementRate(l.Monthly.Quantity, l.TargetQuantity)
	return l
}

// Finish fills in the derived rates of a product row
func (l Line) Finish() Line {
	l.Kind = RowProduct
	return l.withRates()
}

// FlattenLines lays out a line assembly with labelled pseudo-rows
func FlattenLines(a Assembly[Line]) []Line {
	return a.Flatten(
		func(category string, sum Line) Line {
			sum.Kind, sum.Label, sum.Category = RowSubtotal, SubtotalLabel(category), category
			return sum
		},
		func(sum Line) Line {
			sum.Kind, sum.Label = RowTotal, GrandTotalLabel
			return sum
		},
	)
}

// MonthlyRow is one product's twelve monthly totals for a year
type MonthlyRow struct {
	Kind  RowKind `json:"kind"`
	Label string  `json:"label,omitempty"`
	ProductRef
	Months [12]Totals `json:"months"`
	Total  Totals     `json:"total"`
}

// Plus sums month by month
func (r MonthlyRow) Plus(o MonthlyRow) MonthlyRow {
	var sum MonthlyRow
	for i := range sum.Months {
		sum.Months[i] = r.Months[i].Plus(o.Months[i])
	}
	sum.Total = r.Total.Plus(o.Total)
	return sum
}

// Add records totals for a month and the row total
func (r *MonthlyRow) Add(month time.Month, t Totals) {
	r.Months[month-1] = r.Months[month-1].Plus(t)
	r.Total = r.Total.Plus(t)
}

// FlattenMonthly lays out a monthly assembly with labelled pseudo-rows
func FlattenMonthly(a Assembly[MonthlyRow]) []MonthlyRow {
	return a.Flatten(
		func(category string, sum MonthlyRow) MonthlyRow {
			sum.Kind, sum.Label, sum.Category = RowSubtotal, SubtotalLabel(category), category
			return sum
		},
		func(sum MonthlyRow) MonthlyRow {
			sum.Kind, sum.Label = RowTotal, GrandTotalLabel
			return sum
		},
	)
}

// YearlyRow compares a product across three years. GrowthRate compares the
// amounts of the last two years.
type YearlyRow struct {
	Kind  RowKind `json:"kind"`
	Label string  `json:"label,omitempty"`
	ProductRef
	Years      [3]Totals       `json:"years"`
	GrowthRate decimal.Decimal `json:"growth_rate"`
}

// Plus sums year by year and recomputes growth
func (r YearlyRow) Plus(o YearlyRow) YearlyRow {
	var sum YearlyRow
	for i := range sum.Years {
		sum.Years[i] = r.Years[i].Plus(o.Years[i])
	}
	return sum.Finish()
}

// Finish computes the growth rate from the year totals
func (r YearlyRow) Finish() YearlyRow {
	r.GrowthRate = GrowthRate(r.Years[1].Amount, r.Years[2].Amount)
	if r.Kind == "" {
		r.Kind = RowProduct
	}
	return r
}

// FlattenYearly lays out a yearly assembly with labelled pseudo-rows
func FlattenYearly(a Assembly[YearlyRow]) []YearlyRow {
	return a.Flatten(
		func(category string, sum YearlyRow) YearlyRow {
			sum.Kind, sum.Label, sum.Category = RowSubtotal, SubtotalLabel(category), category
			return sum
		},
		func(sum YearlyRow) YearlyRow {
			sum.Kind, sum.Label = RowTotal, GrandTotalLabel
			return sum
		},
	)
}

// MonthlyComparison is the yearly grid of monthly totals
type MonthlyComparison struct {
	Year      int          `json:"year"`
	CompanyID *uuid.UUID   `json:"company_id,omitempty"`
	Rows      []MonthlyRow `json:"rows"`
}

// YearlyComparison compares three years per product
type YearlyComparison struct {
	Years [3]int      `json:"years"`
	Rows  []YearlyRow `json:"rows"`
}

// DayFigures is one day of a period series
type DayFigures struct {
	Date time.Time `json:"date"`
	Totals
}

// PeriodSeries lists every day of a window, zero days included
type PeriodSeries struct {
	Window Window       `json:"window"`
	Days   []DayFigures `json:"days"`
	Total  Totals       `json:"total"`
}

// PeriodComparison compares arbitrary date windows for one product or all
type PeriodComparison struct {
	ProductID   *uuid.UUID     `json:"product_id,omitempty"`
	ProductName string         `json:"product_name"`
	Periods     []PeriodSeries `json:"periods"`
}

// AllProductsLabel names comparisons that cover every product
const AllProductsLabel = "전체 제품"

// ProductYear is one year of a product comparison
type ProductYear struct {
	Year   int        `json:"year"`
	Months [12]Totals `json:"months"`
	Total  Totals     `json:"total"`
}

// ProductComparison compares the current year with the two before it
type ProductComparison struct {
	ProductID   *uuid.UUID    `json:"product_id,omitempty"`
	ProductName string        `json:"product_name"`
	Years       []ProductYear `json:"years"`

	// MonthlyGrowth compares each month of the current year with the
	// previous year by amount
	MonthlyGrowth   [12]decimal.Decimal `json:"monthly_growth"`
	TotalGrowthRate decimal.Decimal     `json:"total_growth_rate"`
}

// DailyStatusCell is one company's figures for a product
type DailyStatusCell struct {
	CompanyID       uuid.UUID       `json:"company_id"`
	CompanyName     string          `json:"company_name"`
	DailyQuantity   int             `json:"daily_quantity"`
	MonthlyQuantity int             `json:"monthly_quantity"`
	MonthlyAmount   decimal.Decimal `json:"monthly_amount"`
}

// DailyStatusRow is one product line of the daily status board
type DailyStatusRow struct {
	ProductRef
	SupplyPrice  decimal.Decimal   `json:"supply_price"`
	Companies    []DailyStatusCell `json:"companies"`
	DailyTotal   Totals            `json:"daily_total"`
	MonthlyTotal Totals            `json:"monthly_total"`

	TargetQuantity int `json:"target_quantity"`

	PreviousMonthQuantity         int `json:"previous_month_quantity"`
	TwoMonthQuantity              int `json:"two_month_quantity"`
	LastYearPreviousMonthQuantity int `json:"last_year_previous_month_quantity"`
	LastYearMonthQuantity         int `json:"last_year_month_quantity"`
	LastYearTwoMonthQuantity      int `json:"last_year_two_month_quantity"`
}

// DailyStatus is the per-company board for one date
type DailyStatus struct {
	Date      time.Time        `json:"date"`
	Companies []string         `json:"companies"`
	Rows      []DailyStatusRow `json:"rows"`
}
