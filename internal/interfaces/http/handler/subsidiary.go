package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/mynet/sales/internal/application/catalog"
	appreport "github.com/mynet/sales/internal/application/report"
	appsales "github.com/mynet/sales/internal/application/sales"
	"github.com/mynet/sales/internal/domain/shared"
)

// SubsidiaryHandler serves the daily input screens of a subsidiary
type SubsidiaryHandler struct {
	BaseHandler
	products    *appcatalog.ProductService
	sales       *appsales.SalesService
	statistics  *appreport.StatisticsService
	comparisons *appreport.ComparisonService
	clock       shared.Clock
	location    *time.Location
}

// NewSubsidiaryHandler creates a new subsidiary handler
func NewSubsidiaryHandler(
	products *appcatalog.ProductService,
	sales *appsales.SalesService,
	statistics *appreport.StatisticsService,
	comparisons *appreport.ComparisonService,
	clock shared.Clock,
	location *time.Location,
) *SubsidiaryHandler {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if location == nil {
		location = time.UTC
	}
	return &SubsidiaryHandler{
		products:    products,
		sales:       sales,
		statistics:  statistics,
		comparisons: comparisons,
		clock:       clock,
		location:    location,
	}
}

// InputSheetResponse is the daily input form of one company
type InputSheetResponse struct {
	Date       string                     `json:"date"`
	Editable   bool                       `json:"editable"`
	Categories []appcatalog.InputCategory `json:"categories"`
}

// SubsidiarySalesRequest writes one quantity for the caller's company
type SubsidiarySalesRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	SalesDate string    `json:"sales_date" binding:"required,datetime=2006-01-02"`
	Quantity  int       `json:"quantity" binding:"min=0"`
}

// SubsidiaryBulkRequest writes the whole input sheet of one date
type SubsidiaryBulkRequest struct {
	SalesDate string                   `json:"sales_date" binding:"required,datetime=2006-01-02"`
	Items     []appsales.BulkSalesItem `json:"items" binding:"required,dive"`
}

type dateQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type yearQuery struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=9999"`
}

// InputSheet godoc
// @Summary      Daily input sheet
// @Description  Active products grouped by category with the quantities already entered for the date
// @Tags         subsidiary
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Sales date (YYYY-MM-DD), default today"
// @Success      200 {object} dto.Response{data=InputSheetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /subsidiary/input [get]
func (h *SubsidiaryHandler) InputSheet(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q dateQuery
	if !h.BindQuery(c, &q) {
		return
	}
	date := shared.Today(h.clock, h.location)
	if q.Date != "" {
		parsed, err := shared.ParseDate(q.Date)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		date = parsed
	}

	categories, err := h.products.InputSheet(c.Request.Context(), p.CompanyID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, InputSheetResponse{
		Date:       date.Format(shared.DateLayout),
		Editable:   h.sales.IsEditable(p, date),
		Categories: categories,
	})
}

// SaveSales godoc
// @Summary      Save one quantity
// @Description  Write the absolute quantity of one product for the caller's company. Only the current month is editable.
// @Tags         subsidiary
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubsidiarySalesRequest true "Quantity"
// @Success      200 {object} dto.Response{data=appsales.SalesRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /subsidiary/sales [post]
func (h *SubsidiaryHandler) SaveSales(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req SubsidiarySalesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.sales.Save(c.Request.Context(), p, appsales.SaveSalesRequest{
		CompanyID: p.CompanyID,
		ProductID: req.ProductID,
		SalesDate: req.SalesDate,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// BulkSaveSales godoc
// @Summary      Save the input sheet
// @Description  Write many quantities of the caller's company for one date. Each item succeeds or fails on its own.
// @Tags         subsidiary
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubsidiaryBulkRequest true "Quantities"
// @Success      200 {object} dto.Response{data=appsales.BulkResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /subsidiary/sales/bulk [post]
func (h *SubsidiaryHandler) BulkSaveSales(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req SubsidiaryBulkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.sales.BulkSave(c.Request.Context(), p, appsales.BulkSalesRequest{
		CompanyID: p.CompanyID,
		SalesDate: req.SalesDate,
		Items:     req.Items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Statistics godoc
// @Summary      Company statistics
// @Description  Daily and month-to-date figures of the caller's company
// @Tags         subsidiary
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Date (YYYY-MM-DD), default today"
// @Success      200 {object} dto.Response{data=appreport.StatisticsView}
// @Router       /subsidiary/statistics [get]
func (h *SubsidiaryHandler) Statistics(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q dateQuery
	if !h.BindQuery(c, &q) {
		return
	}

	view, err := h.statistics.View(c.Request.Context(), p, appreport.ViewQuery{
		Company: p.CompanyID.String(),
		Date:    q.Date,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// MonthlySales godoc
// @Summary      Company monthly sales
// @Description  Twelve months of quantity and amount per product for the caller's company
// @Tags         subsidiary
// @Produce      json
// @Security     BearerAuth
// @Param        year query int false "Year, default current"
// @Success      200 {object} dto.Response{data=report.MonthlyComparison}
// @Router       /subsidiary/monthly-sales [get]
func (h *SubsidiaryHandler) MonthlySales(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q yearQuery
	if !h.BindQuery(c, &q) {
		return
	}

	comparison, err := h.comparisons.CompanyMonthly(c.Request.Context(), p, q.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comparison)
}
