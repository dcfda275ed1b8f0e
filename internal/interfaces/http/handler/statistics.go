package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/mynet/sales/internal/application/catalog"
	appreport "github.com/mynet/sales/internal/application/report"
)

// StatisticsHandler serves the comparison reports and their spreadsheet
// downloads. The same handlers back /statistics and /mynet/compare.
type StatisticsHandler struct {
	BaseHandler
	comparisons *appreport.ComparisonService
	exports     *appreport.ExportService
	products    *appcatalog.ProductService
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(
	comparisons *appreport.ComparisonService,
	exports *appreport.ExportService,
	products *appcatalog.ProductService,
) *StatisticsHandler {
	return &StatisticsHandler{
		comparisons: comparisons,
		exports:     exports,
		products:    products,
	}
}

func (h *StatisticsHandler) bindMonthly(c *gin.Context) (appreport.MonthlyQuery, bool) {
	var q appreport.MonthlyQuery
	if !h.BindQuery(c, &q) {
		return q, false
	}
	companyID, ok := h.QueryUUID(c, "company_id")
	q.CompanyID = companyID
	return q, ok
}

func (h *StatisticsHandler) bindProduct(c *gin.Context) (appreport.ProductQuery, bool) {
	var q appreport.ProductQuery
	if !h.BindQuery(c, &q) {
		return q, false
	}
	productID, ok := h.QueryUUID(c, "product_id")
	q.ProductID = productID
	return q, ok
}

// Products godoc
// @Summary      Product list
// @Description  Every product, active or not, with its current prices. Used to pick comparison subjects.
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]appcatalog.ProductResponse}
// @Router       /statistics/products [get]
func (h *StatisticsHandler) Products(c *gin.Context) {
	products, err := h.products.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, products, len(products))
}

// Monthly godoc
// @Summary      Monthly comparison
// @Description  Twelve months of quantity and amount per product for a year, optionally for one company
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        year query int false "Year, default current"
// @Param        company_id query string false "Company ID"
// @Success      200 {object} dto.Response{data=report.MonthlyComparison}
// @Router       /statistics/monthly [get]
func (h *StatisticsHandler) Monthly(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	q, ok := h.bindMonthly(c)
	if !ok {
		return
	}

	comparison, err := h.comparisons.Monthly(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comparison)
}

// ExportMonthly godoc
// @Summary      Export the monthly comparison
// @Tags         statistics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        year query int false "Year, default current"
// @Param        company_id query string false "Company ID"
// @Success      200 {file} file
// @Router       /statistics/monthly/export [get]
func (h *StatisticsHandler) ExportMonthly(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	q, ok := h.bindMonthly(c)
	if !ok {
		return
	}

	file, err := h.exports.ExportMonthly(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Attachment(c, file)
}

// Yearly godoc
// @Summary      Yearly comparison
// @Description  Quantity and amount per product for three consecutive years, with growth rates
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        start_year query int false "First year, default end_year minus two"
// @Param        end_year query int false "End year, default current"
// @Success      200 {object} dto.Response{data=report.YearlyComparison}
// @Router       /statistics/yearly [get]
func (h *StatisticsHandler) Yearly(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q appreport.YearlyQuery
	if !h.BindQuery(c, &q) {
		return
	}

	comparison, err := h.comparisons.Yearly(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comparison)
}

// ExportYearly godoc
// @Summary      Export the yearly comparison
// @Tags         statistics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        start_year query int false "Start year"
// @Param        end_year query int false "End year"
// @Success      200 {file} file
// @Router       /statistics/yearly/export [get]
func (h *StatisticsHandler) ExportYearly(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q appreport.YearlyQuery
	if !h.BindQuery(c, &q) {
		return
	}

	file, err := h.exports.ExportYearly(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Attachment(c, file)
}

// Period godoc
// @Summary      Period comparison
// @Description  Daily quantity and amount over each requested date range, zero days included
// @Tags         statistics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appreport.PeriodRequest true "Periods"
// @Success      200 {object} dto.Response{data=report.PeriodComparison}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /statistics/period [post]
func (h *StatisticsHandler) Period(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req appreport.PeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	comparison, err := h.comparisons.Period(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comparison)
}

// ExportPeriod godoc
// @Summary      Export the period comparison
// @Tags         statistics
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        request body appreport.PeriodRequest true "Periods"
// @Success      200 {file} file
// @Router       /statistics/period/export [post]
func (h *StatisticsHandler) ExportPeriod(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req appreport.PeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	file, err := h.exports.ExportPeriod(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Attachment(c, file)
}

// Product godoc
// @Summary      Product comparison
// @Description  Three years of monthly quantity and amount for one product, or all products when product_id is omitted
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        product_id query string false "Product ID"
// @Param        year query int false "Current year, default this year"
// @Success      200 {object} dto.Response{data=report.ProductComparison}
// @Router       /statistics/product [get]
func (h *StatisticsHandler) Product(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	q, ok := h.bindProduct(c)
	if !ok {
		return
	}

	comparison, err := h.comparisons.Product(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comparison)
}

// ExportProduct godoc
// @Summary      Export the product comparison
// @Tags         statistics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        product_id query string false "Product ID"
// @Param        year query int false "Current year"
// @Success      200 {file} file
// @Router       /statistics/product/export [get]
func (h *StatisticsHandler) ExportProduct(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	q, ok := h.bindProduct(c)
	if !ok {
		return
	}

	file, err := h.exports.ExportProduct(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Attachment(c, file)
}
