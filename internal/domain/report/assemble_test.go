package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(category, code string, qty int, amount, profit string, target int) Line {
	return Line{
		ProductRef:     ProductRef{Category: category, ProductCode: code},
		Monthly:        Figures{Quantity: qty, Amount: dec(amount), Profit: dec(profit)},
		Daily:          Figures{Quantity: qty / 2, Amount: dec(amount).Div(decimal.NewFromInt(2))},
		TargetQuantity: target,
		TargetMonth:    time.March,
	}.Finish()
}

func TestAssemble_FirstSeenCategoryOrder(t *testing.T) {
	rows := []Line{
		line("토너", "0003", 10, "1000", "100", 20),
		line("드럼", "0001", 5, "500", "50", 0),
		line("토너", "0002", 30, "3000", "600", 20),
		line("잉크", "0004", 1, "10", "1", 4),
	}

	a := Assemble(rows, func(l Line) string { return l.Category })

	require.Len(t, a.Groups, 3)
	assert.Equal(t, "토너", a.Groups[0].Category)
	assert.Equal(t, "드럼", a.Groups[1].Category)
	assert.Equal(t, "잉크", a.Groups[2].Category)
	assert.Equal(t, []string{"0003", "0002"}, []string{a.Groups[0].Rows[0].ProductCode, a.Groups[0].Rows[1].ProductCode})
}

func TestAssemble_SubtotalsAndGrandTotalAreConsistent(t *testing.T) {
	rows := []Line{
		line("토너", "0003", 10, "1000", "100", 20),
		line("드럼", "0001", 5, "500", "50", 0),
		line("토너", "0002", 30, "3000", "600", 20),
	}

	a := Assemble(rows, func(l Line) string { return l.Category })

	var subtotalQty, grandFromRows int
	for _, g := range a.Groups {
		var members int
		for _, r := range g.Rows {
			members += r.Monthly.Quantity
		}
		assert.Equal(t, members, g.Subtotal.Monthly.Quantity, g.Category)
		subtotalQty += g.Subtotal.Monthly.Quantity
	}
	for _, r := range rows {
		grandFromRows += r.Monthly.Quantity
	}
	assert.Equal(t, subtotalQty, a.GrandTotal.Monthly.Quantity)
	assert.Equal(t, grandFromRows, a.GrandTotal.Monthly.Quantity)
	assert.True(t, a.GrandTotal.Monthly.Amount.Equal(dec("4500")))
}

func TestAssemble_AchievementRecomputedFromSums(t *testing.T) {
	// 10/20 = 50% and 30/20 = 150%; recomputed 40/40 = 100%, not an average
	rows := []Line{
		line("토너", "0001", 10, "1000", "100", 20),
		line("토너", "0002", 30, "3000", "600", 20),
		line("드럼", "0003", 5, "500", "50", 0),
	}

	a := Assemble(rows, func(l Line) string { return l.Category })

	assert.True(t, a.Groups[0].Subtotal.AchievementRate.Equal(dec("100")))
	assert.True(t, a.Groups[1].Subtotal.AchievementRate.IsZero(), "no target means zero achievement")
	// 45 / 40
	assert.True(t, a.GrandTotal.AchievementRate.Equal(dec("112.5")))
	// 750 / 4500
	assert.True(t, a.GrandTotal.MonthlyProfitRate.Equal(dec("16.67")))
}

func TestFlattenLines(t *testing.T) {
	rows := []Line{
		line("토너", "0001", 10, "1000", "100", 20),
		line("드럼", "0002", 5, "500", "50", 0),
	}

	flat := FlattenLines(Assemble(rows, func(l Line) string { return l.Category }))

	require.Len(t, flat, 5)
	kinds := make([]RowKind, len(flat))
	for i, l := range flat {
		kinds[i] = l.Kind
	}
	assert.Equal(t, []RowKind{RowProduct, RowSubtotal, RowProduct, RowSubtotal, RowTotal}, kinds)
	assert.Equal(t, "토너 소계", flat[1].Label)
	assert.Equal(t, "토너", flat[1].Category)
	assert.Equal(t, GrandTotalLabel, flat[4].Label)
	assert.Equal(t, 15, flat[4].Monthly.Quantity)
}

func TestFlattenLines_Empty(t *testing.T) {
	flat := FlattenLines(Assemble[Line](nil, func(l Line) string { return l.Category }))
	require.Len(t, flat, 1)
	assert.Equal(t, RowTotal, flat[0].Kind)
	assert.Zero(t, flat[0].Monthly.Quantity)
}

func TestYearlyRow_GrowthRecomputed(t *testing.T) {
	a := YearlyRow{ProductRef: ProductRef{Category: "A"}}
	a.Years[1] = Totals{Quantity: 1, Amount: dec("100")}
	a.Years[2] = Totals{Quantity: 1, Amount: dec("150")}
	b := YearlyRow{ProductRef: ProductRef{Category: "A"}}
	b.Years[2] = Totals{Quantity: 1, Amount: dec("50")}

	rows := []YearlyRow{a.Finish(), b.Finish()}
	assert.True(t, rows[0].GrowthRate.Equal(dec("50")))
	assert.True(t, rows[1].GrowthRate.Equal(dec("100")), "growth from zero")

	flat := FlattenYearly(Assemble(rows, func(r YearlyRow) string { return r.Category }))
	require.Len(t, flat, 4)
	// 100 -> 200
	assert.True(t, flat[2].GrowthRate.Equal(dec("100")))
	assert.Equal(t, 2, flat[3].Years[2].Quantity)
}

func TestMonthlyRow_Add(t *testing.T) {
	var r MonthlyRow
	r.Add(time.January, Totals{Quantity: 2, Amount: dec("20")})
	r.Add(time.December, Totals{Quantity: 3, Amount: dec("30")})
	r.Add(time.January, Totals{Quantity: 1, Amount: dec("10")})

	assert.Equal(t, 3, r.Months[0].Quantity)
	assert.Equal(t, 3, r.Months[11].Quantity)
	assert.Equal(t, 6, r.Total.Quantity)
	assert.True(t, r.Total.Amount.Equal(dec("60")))
}
