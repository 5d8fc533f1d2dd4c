package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marketpos/marketpos-api/internal/application/service"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles dashboard and analytics endpoints
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard handles GET /api/v1/reports/dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved", stats)
}

// ForecastCashflow handles GET /api/v1/reports/cashflow-forecast?days=N
func (h *ReportHandler) ForecastCashflow(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "14"))
	if err != nil {
		response.BadRequest(c, "Invalid days parameter")
		return
	}

	forecast, err := h.reportService.ForecastCashflow(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cashflow forecast retrieved", forecast)
}

// DetectAnomalies handles GET /api/v1/reports/anomalies?since=RFC3339
func (h *ReportHandler) DetectAnomalies(c *gin.Context) {
	since := time.Now().AddDate(0, 0, -7)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "Invalid since parameter, expected RFC3339")
			return
		}
		since = parsed
	}

	anomalies, err := h.reportService.DetectAnomalies(c.Request.Context(), since)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Anomalies retrieved", anomalies)
}

// ExportSales handles GET /api/v1/reports/sales/export?days=N
func (h *ReportHandler) ExportSales(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		response.BadRequest(c, "Invalid days parameter")
		return
	}

	buf, err := h.reportService.ExportSalesExcel(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "sales-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
