package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// ReportHandler aggregate statistics endpoints
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GetReports totals by zone and group
// GET /api/v1/reports
func (h *ReportHandler) GetReports(c *gin.Context) {
	resp, err := h.reportSvc.GetReports(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

// GetDashboard
// GET /api/v1/dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	resp, err := h.reportSvc.GetDashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}
