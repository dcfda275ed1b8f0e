package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mynet/sales/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type salesForm struct {
	CompanyName string `json:"company_name" binding:"required,notblank"`
	SalesDate   string `json:"sales_date" binding:"required,datetime=2006-01-02"`
	Month       string `json:"month" binding:"omitempty,yearmonth"`
	Quantity    int    `json:"quantity" binding:"min=0"`
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req salesForm
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid", func(t *testing.T) {
		rec := post(`{"company_name":"본사","sales_date":"2024-03-15","month":"2024-03","quantity":3}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("reports every field by its JSON name", func(t *testing.T) {
		rec := post(`{"company_name":"  ","sales_date":"15/03/2024","month":"2024-13","quantity":-1}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		messages := map[string]string{}
		for _, d := range resp.Error.Details {
			messages[d.Field] = d.Message
		}
		assert.Equal(t, map[string]string{
			"company_name": "Must not be blank",
			"sales_date":   "Must be a date in 2006-01-02 format",
			"month":        "Must be a month in 2006-01 format",
			"quantity":     "Must be at least 0",
		}, messages)
	})

	t.Run("malformed JSON has no details", func(t *testing.T) {
		rec := post(`{"company_name":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Error.Details)
	})
}
