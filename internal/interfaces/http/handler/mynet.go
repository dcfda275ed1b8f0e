package handler

import (
	"github.com/gin-gonic/gin"
	appreport "github.com/mynet/sales/internal/application/report"
	appsales "github.com/mynet/sales/internal/application/sales"
	apptarget "github.com/mynet/sales/internal/application/target"
	"github.com/mynet/sales/internal/domain/shared"
)

// MynetHandler serves the headquarters screens: the statistics view,
// sales corrections, targets and the daily status board
type MynetHandler struct {
	BaseHandler
	statistics  *appreport.StatisticsService
	dailyStatus *appreport.DailyStatusService
	exports     *appreport.ExportService
	sales       *appsales.SalesService
	targets     *apptarget.TargetService
}

// NewMynetHandler creates a new headquarters handler
func NewMynetHandler(
	statistics *appreport.StatisticsService,
	dailyStatus *appreport.DailyStatusService,
	exports *appreport.ExportService,
	sales *appsales.SalesService,
	targets *apptarget.TargetService,
) *MynetHandler {
	return &MynetHandler{
		statistics:  statistics,
		dailyStatus: dailyStatus,
		exports:     exports,
		sales:       sales,
		targets:     targets,
	}
}

// View godoc
// @Summary      Statistics view
// @Description  Per product daily and monthly figures for one company or all companies, with category subtotals and a grand total
// @Tags         mynet
// @Produce      json
// @Security     BearerAuth
// @Param        company query string false "Company ID or \"all\""
// @Param        date query string false "Date (YYYY-MM-DD), default today"
// @Success      200 {object} dto.Response{data=appreport.StatisticsView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mynet/view [get]
func (h *MynetHandler) View(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q appreport.ViewQuery
	if !h.BindQuery(c, &q) {
		return
	}

	view, err := h.statistics.View(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ExportView godoc
// @Summary      Export the statistics view
// @Tags         mynet
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        company query string false "Company ID or \"all\""
// @Param        date query string false "Date (YYYY-MM-DD), default today"
// @Success      200 {file} file
// @Router       /mynet/view/export [get]
func (h *MynetHandler) ExportView(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q appreport.ViewQuery
	if !h.BindQuery(c, &q) {
		return
	}

	file, err := h.exports.ExportStatistics(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Attachment(c, file)
}

// ListSales godoc
// @Summary      Sales of a company on a date
// @Tags         mynet
// @Produce      json
// @Security     BearerAuth
// @Param        company_id query string true "Company ID"
// @Param        date query string true "Sales date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]appsales.SalesRecordResponse}
// @Router       /mynet/sales [get]
func (h *MynetHandler) ListSales(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	companyID, ok := h.QueryUUID(c, "company_id")
	if !ok {
		return
	}
	if companyID == nil {
		h.BadRequest(c, "company_id is required")
		return
	}
	date, err := shared.ParseDate(c.Query("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	records, err := h.sales.ListByCompanyAndDate(c.Request.Context(), p, *companyID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, records, len(records))
}

// UpdateSales godoc
// @Summary      Correct sales quantities
// @Description  Overwrite the quantities of many products of one company and date
// @Tags         mynet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appsales.BulkSalesRequest true "Quantities"
// @Success      200 {object} dto.Response{data=appsales.BulkResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mynet/sales [put]
func (h *MynetHandler) UpdateSales(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req appsales.BulkSalesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.sales.BulkSave(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteSales godoc
// @Summary      Delete a sales record
// @Description  Remove one (company, product, date) record. Deleting a missing record succeeds.
// @Tags         mynet
// @Accept       json
// @Security     BearerAuth
// @Param        request body appsales.DeleteSalesRequest true "Record key"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mynet/sales [delete]
func (h *MynetHandler) DeleteSales(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req appsales.DeleteSalesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.sales.Delete(c.Request.Context(), p, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateTargets godoc
// @Summary      Set monthly targets
// @Description  Write the targets of many products for one company, or the global targets when company_id is omitted
// @Tags         mynet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body apptarget.BulkTargetRequest true "Targets"
// @Success      200 {object} dto.Response{data=apptarget.BulkTargetResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mynet/targets [put]
func (h *MynetHandler) UpdateTargets(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req apptarget.BulkTargetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.targets.BulkSave(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListTargets godoc
// @Summary      Monthly targets
// @Description  Targets of one company for a month, or the global targets when company_id is omitted
// @Tags         mynet
// @Produce      json
// @Security     BearerAuth
// @Param        month query string true "Month (YYYY-MM)"
// @Param        company_id query string false "Company ID"
// @Success      200 {object} dto.Response{data=[]apptarget.TargetResponse}
// @Router       /mynet/targets [get]
func (h *MynetHandler) ListTargets(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	month, ok := h.QueryMonth(c, "month")
	if !ok {
		return
	}
	companyID, ok := h.QueryUUID(c, "company_id")
	if !ok {
		return
	}

	var (
		targets []apptarget.TargetResponse
		err     error
	)
	if companyID == nil {
		targets, err = h.targets.ListGlobal(c.Request.Context(), p, month)
	} else {
		targets, err = h.targets.ListByCompanyAndMonth(c.Request.Context(), p, *companyID, month)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, targets, len(targets))
}

// DeleteTarget godoc
// @Summary      Delete a target
// @Tags         mynet
// @Security     BearerAuth
// @Param        id path string true "Target ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mynet/targets/{id} [delete]
func (h *MynetHandler) DeleteTarget(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.targets.Delete(c.Request.Context(), p, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ReconcileTargets godoc
// @Summary      Compare global and company targets
// @Description  Report whether the per-company targets of a product add up to its global target
// @Tags         mynet
// @Produce      json
// @Security     BearerAuth
// @Param        product_id query string true "Product ID"
// @Param        month query string true "Month (YYYY-MM)"
// @Success      200 {object} dto.Response{data=apptarget.ReconcileResponse}
// @Router       /mynet/targets/reconcile [get]
func (h *MynetHandler) ReconcileTargets(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	productID, ok := h.QueryUUID(c, "product_id")
	if !ok {
		return
	}
	if productID == nil {
		h.BadRequest(c, "product_id is required")
		return
	}
	month, ok := h.QueryMonth(c, "month")
	if !ok {
		return
	}

	result, err := h.targets.Reconcile(c.Request.Context(), p, *productID, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DailyStatus godoc
// @Summary      Daily status board
// @Description  Per product and subsidiary quantities for the date with month-to-date, previous month and last year figures
// @Tags         mynet
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Date (YYYY-MM-DD), default today"
// @Success      200 {object} dto.Response{data=report.DailyStatus}
// @Router       /mynet/daily-status [get]
func (h *MynetHandler) DailyStatus(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q appreport.DailyStatusQuery
	if !h.BindQuery(c, &q) {
		return
	}

	status, err := h.dailyStatus.Status(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// ExportDailyStatus godoc
// @Summary      Export the daily status board
// @Tags         mynet
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        date query string false "Date (YYYY-MM-DD), default today"
// @Success      200 {file} file
// @Router       /mynet/daily-status/export [get]
func (h *MynetHandler) ExportDailyStatus(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q appreport.DailyStatusQuery
	if !h.BindQuery(c, &q) {
		return
	}

	file, err := h.exports.ExportDailyStatus(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Attachment(c, file)
}
