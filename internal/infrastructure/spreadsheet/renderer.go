// Package spreadsheet renders report results as xlsx workbooks.
package spreadsheet

import (
	"fmt"

	appreport "github.com/mynet/sales/internal/application/report"
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	numFmtInteger = 3 // #,##0
	numFmtDecimal = 4 // #,##0.00
)

// Renderer implements report.WorkbookRenderer with excelize
type Renderer struct{}

// NewRenderer creates a workbook renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderStatistics writes the product table of the statistics view
func (r *Renderer) RenderStatistics(view *appreport.StatisticsView) ([]byte, error) {
	return render("조회", func(s *sheet) {
		s.title(fmt.Sprintf("%s %s", view.CompanyName, view.Date))
		s.header("카테고리", "제품코드", "제품명", "원가", "공급가",
			"일 수량", "일 금액", "일 이익", "일 이익률(%)", "전일 대비(%)",
			"월 수량", "월 금액", "월 이익", "월 이익률(%)", "전월 대비(%)",
			"목표", "달성률(%)")
		for _, l := range view.Lines {
			s.addRow(l.Kind,
				l.Category, l.ProductCode, rowLabel(l.Kind, l.Label, l.ProductName), optional(l.CostPrice), optional(l.SupplyPrice),
				l.Daily.Quantity, money(l.Daily.Amount), money(l.Daily.Profit), rate(l.DailyProfitRate), rate(l.DailyDelta.ChangeRate),
				l.Monthly.Quantity, money(l.Monthly.Amount), money(l.Monthly.Profit), rate(l.MonthlyProfitRate), rate(l.MonthlyDelta.ChangeRate),
				l.TargetQuantity, rate(l.AchievementRate))
		}
		s.widths(12, 10, 24)
	})
}

// RenderDailyStatus writes the daily status board, one column pair per company
func (r *Renderer) RenderDailyStatus(status *report.DailyStatus) ([]byte, error) {
	return render("일일매출현황", func(s *sheet) {
		s.title("일일 매출 현황 " + status.Date.Format(shared.DateLayout))
		header := []any{"카테고리", "제품명", "공급가"}
		for _, name := range status.Companies {
			header = append(header, name+" 일", name+" 월")
		}
		header = append(header, "일 합계", "일 금액", "월 합계", "월 금액", "목표",
			"전월", "2개월 누계", "전년 전월", "전년 당월", "전년 2개월 누계")
		s.header(header...)

		for _, row := range status.Rows {
			values := []any{row.Category, row.ProductName, money(row.SupplyPrice)}
			for _, cell := range row.Companies {
				values = append(values, cell.DailyQuantity, cell.MonthlyQuantity)
			}
			values = append(values,
				row.DailyTotal.Quantity, money(row.DailyTotal.Amount),
				row.MonthlyTotal.Quantity, money(row.MonthlyTotal.Amount),
				row.TargetQuantity,
				row.PreviousMonthQuantity, row.TwoMonthQuantity,
				row.LastYearPreviousMonthQuantity, row.LastYearMonthQuantity, row.LastYearTwoMonthQuantity)
			s.addRow(report.RowProduct, values...)
		}
		s.widths(12, 24)
	})
}

// RenderMonthly writes quantity and amount for each month of the year
func (r *Renderer) RenderMonthly(c *report.MonthlyComparison) ([]byte, error) {
	return render(fmt.Sprintf("%d년 월별", c.Year), func(s *sheet) {
		s.title(fmt.Sprintf("%d년 월별 비교", c.Year))
		header := []any{"카테고리", "제품명"}
		for m := 1; m <= 12; m++ {
			header = append(header, fmt.Sprintf("%d월 수량", m), fmt.Sprintf("%d월 금액", m))
		}
		s.header(append(header, "합계 수량", "합계 금액")...)

		for _, row := range c.Rows {
			values := []any{row.Category, rowLabel(row.Kind, row.Label, row.ProductName)}
			for _, t := range row.Months {
				values = append(values, t.Quantity, money(t.Amount))
			}
			s.addRow(row.Kind, append(values, row.Total.Quantity, money(row.Total.Amount))...)
		}
		s.widths(12, 24)
	})
}

// RenderYearly writes the three compared years and the growth rate
func (r *Renderer) RenderYearly(c *report.YearlyComparison) ([]byte, error) {
	return render("연도별", func(s *sheet) {
		s.title(fmt.Sprintf("연도별 비교 %d-%d", c.Years[0], c.Years[2]))
		header := []any{"카테고리", "제품명"}
		for _, y := range c.Years {
			header = append(header, fmt.Sprintf("%d 수량", y), fmt.Sprintf("%d 금액", y))
		}
		s.header(append(header, "성장률(%)")...)

		for _, row := range c.Rows {
			values := []any{row.Category, rowLabel(row.Kind, row.Label, row.ProductName)}
			for _, t := range row.Years {
				values = append(values, t.Quantity, money(t.Amount))
			}
			s.addRow(row.Kind, append(values, rate(row.GrowthRate))...)
		}
		s.widths(12, 24)
	})
}

// RenderPeriod writes one block per period with a line for every day
func (r *Renderer) RenderPeriod(c *report.PeriodComparison) ([]byte, error) {
	return render("기간별", func(s *sheet) {
		s.title("기간별 비교 " + c.ProductName)
		for i, p := range c.Periods {
			s.header(fmt.Sprintf("기간 %d", i+1), p.Window.From.Format(shared.DateLayout)+" ~ "+p.Window.To.Format(shared.DateLayout))
			s.header("날짜", "수량", "금액")
			for _, d := range p.Days {
				s.addRow(report.RowProduct, d.Date.Format(shared.DateLayout), d.Quantity, money(d.Amount))
			}
			s.addRow(report.RowTotal, report.GrandTotalLabel, p.Total.Quantity, money(p.Total.Amount))
			s.skip()
		}
		s.widths(14, 12, 16)
	})
}

// RenderProduct writes three years by month and the growth of the last year
func (r *Renderer) RenderProduct(c *report.ProductComparison) ([]byte, error) {
	return render("제품별", func(s *sheet) {
		s.title("제품별 비교 " + c.ProductName)
		header := []any{"연도", "구분"}
		for m := 1; m <= 12; m++ {
			header = append(header, fmt.Sprintf("%d월", m))
		}
		s.header(append(header, "합계")...)

		for _, y := range c.Years {
			qty := []any{y.Year, "수량"}
			amount := []any{y.Year, "금액"}
			for _, t := range y.Months {
				qty = append(qty, t.Quantity)
				amount = append(amount, money(t.Amount))
			}
			s.addRow(report.RowProduct, append(qty, y.Total.Quantity)...)
			s.addRow(report.RowProduct, append(amount, money(y.Total.Amount))...)
		}

		growth := []any{"성장률(%)", ""}
		for _, g := range c.MonthlyGrowth {
			growth = append(growth, rate(g))
		}
		s.addRow(report.RowTotal, append(growth, rate(c.TotalGrowthRate))...)
		s.widths(10, 10)
	})
}

func rowLabel(kind report.RowKind, label, productName string) string {
	if kind == report.RowProduct || label == "" {
		return productName
	}
	return label
}

type cellValue struct {
	v      any
	numFmt int
}

func money(d decimal.Decimal) cellValue {
	return cellValue{v: d.InexactFloat64(), numFmt: numFmtInteger}
}

func rate(d decimal.Decimal) cellValue {
	return cellValue{v: d.InexactFloat64(), numFmt: numFmtDecimal}
}

func optional(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return money(*d)
}

type sheet struct {
	f      *excelize.File
	name   string
	row    int
	styles map[string]int
	err    error
}

func render(name string, fill func(s *sheet)) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("spreadsheet: rename sheet: %w", err)
	}
	s := &sheet{f: f, name: name, row: 1, styles: make(map[string]int)}
	fill(s)
	if s.err != nil {
		return nil, fmt.Errorf("spreadsheet: %w", s.err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *sheet) title(text string) {
	s.put([]any{text}, s.style("title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}))
	s.skip()
}

func (s *sheet) header(values ...any) {
	s.put(values, s.style("header", &excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}))
}

func (s *sheet) addRow(kind report.RowKind, values ...any) {
	rowStyle := -1
	switch kind {
	case report.RowSubtotal:
		rowStyle = s.style("subtotal", &excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F2F2F2"}},
		})
	case report.RowTotal:
		rowStyle = s.style("total", &excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFF2CC"}},
		})
	}

	plain := make([]any, len(values))
	for i, v := range values {
		plain[i] = v
		if cv, ok := v.(cellValue); ok {
			plain[i] = cv.v
		}
	}
	s.put(plain, rowStyle)
	if s.err != nil {
		return
	}

	row := s.row - 1
	for i, v := range values {
		cv, ok := v.(cellValue)
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			s.fail(err)
			return
		}
		id := s.style(fmt.Sprintf("%s/%d", kind, cv.numFmt), s.numberStyle(kind, cv.numFmt))
		s.fail(s.f.SetCellStyle(s.name, cell, cell, id))
	}
}

func (s *sheet) numberStyle(kind report.RowKind, numFmt int) *excelize.Style {
	style := &excelize.Style{NumFmt: numFmt}
	switch kind {
	case report.RowSubtotal:
		style.Font = &excelize.Font{Bold: true}
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F2F2F2"}}
	case report.RowTotal:
		style.Font = &excelize.Font{Bold: true}
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFF2CC"}}
	}
	return style
}

func (s *sheet) put(values []any, styleID int) {
	if s.err != nil {
		return
	}
	start, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.fail(err)
		return
	}
	s.fail(s.f.SetSheetRow(s.name, start, &values))
	if styleID >= 0 && len(values) > 0 {
		end, err := excelize.CoordinatesToCellName(len(values), s.row)
		if err != nil {
			s.fail(err)
			return
		}
		s.fail(s.f.SetCellStyle(s.name, start, end, styleID))
	}
	s.row++
}

func (s *sheet) skip() {
	s.row++
}

// widths sets the leading column widths
func (s *sheet) widths(widths ...float64) {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			s.fail(err)
			return
		}
		s.fail(s.f.SetColWidth(s.name, col, col, w))
	}
}

func (s *sheet) style(key string, def *excelize.Style) int {
	if id, ok := s.styles[key]; ok {
		return id
	}
	id, err := s.f.NewStyle(def)
	if err != nil {
		s.fail(err)
		return -1
	}
	s.styles[key] = id
	return id
}

func (s *sheet) fail(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

var _ appreport.WorkbookRenderer = (*Renderer)(nil)
