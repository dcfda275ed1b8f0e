package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	appreport "github.com/mynet/sales/internal/application/report"
	appsales "github.com/mynet/sales/internal/application/sales"
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/interfaces/http/handler"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsidiary_InputSheet(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, "alpha", http.MethodGet, "/api/v1/subsidiary/input", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sheet := decode[handler.InputSheetResponse](t, rec)
	assert.Equal(t, "2024-03-15", sheet.Date, "defaults to today in Seoul")
	assert.True(t, sheet.Editable)
	require.Len(t, sheet.Categories, 1)
	assert.Equal(t, "토너", sheet.Categories[0].Category)
	require.Len(t, sheet.Categories[0].Items, 1)
	assert.Equal(t, 0, sheet.Categories[0].Items[0].Quantity)

	rec = f.do(t, "alpha", http.MethodGet, "/api/v1/subsidiary/input?date=2024-02-29", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[handler.InputSheetResponse](t, rec).Editable, "last month is closed")
}

func TestSubsidiary_SaveSales(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales", map[string]any{
		"product_id": f.toner.ID,
		"sales_date": "2024-03-15",
		"quantity":   5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[appsales.SalesRecordResponse](t, rec)
	assert.Equal(t, f.alpha.ID, saved.CompanyID, "always the caller's company")
	assert.Equal(t, 5, saved.Quantity)
	assert.Equal(t, "alpha", saved.ModifiedBy)

	t.Run("quantity is absolute", func(t *testing.T) {
		rec := f.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales", map[string]any{
			"product_id": f.toner.ID,
			"sales_date": "2024-03-15",
			"quantity":   3,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = f.do(t, "alpha", http.MethodGet, "/api/v1/subsidiary/input?date=2024-03-15", nil)
		sheet := decode[handler.InputSheetResponse](t, rec)
		assert.Equal(t, 3, sheet.Categories[0].Items[0].Quantity)
	})

	t.Run("previous month is closed", func(t *testing.T) {
		rec := f.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales", map[string]any{
			"product_id": f.toner.ID,
			"sales_date": "2024-02-29",
			"quantity":   1,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "EDIT_WINDOW_CLOSED", errorCode(t, rec))
	})

	t.Run("negative quantity", func(t *testing.T) {
		rec := f.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales", map[string]any{
			"product_id": f.toner.ID,
			"sales_date": "2024-03-15",
			"quantity":   -1,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := f.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales", map[string]any{
			"product_id": uuid.New(),
			"sales_date": "2024-03-15",
			"quantity":   1,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubsidiary_BulkSaveSales(t *testing.T) {
	f := newAPIFixture(t)
	missing := uuid.New()

	rec := f.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales/bulk", map[string]any{
		"sales_date": "2024-03-14",
		"items": []map[string]any{
			{"product_id": f.toner.ID, "quantity": 7},
			{"product_id": missing, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[appsales.BulkResult](t, rec)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.False(t, result.Items[1].Success)
	assert.Equal(t, missing, result.Items[1].ProductID)

	rec = f.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales/bulk", map[string]any{
		"sales_date": "2024-01-10",
		"items":      []map[string]any{{"product_id": f.toner.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubsidiary_Statistics(t *testing.T) {
	f := newAPIFixture(t)

	for _, body := range []map[string]any{
		{"product_id": f.toner.ID, "sales_date": "2024-03-14", "quantity": 2},
		{"product_id": f.toner.ID, "sales_date": "2024-03-15", "quantity": 4},
	} {
		rec := f.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := f.do(t, "alpha", http.MethodGet, "/api/v1/subsidiary/statistics?date=2024-03-15", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[appreport.StatisticsView](t, rec)
	require.NotNil(t, view.CompanyID)
	assert.Equal(t, f.alpha.ID, *view.CompanyID)

	var line *report.Line
	for i := range view.Lines {
		if view.Lines[i].Kind == report.RowProduct {
			line = &view.Lines[i]
		}
	}
	require.NotNil(t, line)
	assert.Equal(t, 4, line.Daily.Quantity)
	assert.Equal(t, 6, line.Monthly.Quantity)
	assert.True(t, decimal.NewFromInt(6000).Equal(line.Monthly.Amount), line.Monthly.Amount.String())

	rec = f.do(t, "alpha", http.MethodGet, "/api/v1/subsidiary/monthly-sales?year=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	monthly := decode[report.MonthlyComparison](t, rec)
	assert.Equal(t, 2024, monthly.Year)
	require.NotEmpty(t, monthly.Rows)
	total := monthly.Rows[len(monthly.Rows)-1]
	assert.Equal(t, report.RowTotal, total.Kind)
	assert.Equal(t, 6, total.Months[2].Quantity)
}
