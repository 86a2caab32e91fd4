package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler file export endpoints
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSignatures signature sheet of a group over three months
// GET /api/v1/export/signatures?group_id=&year=&month=&format=xlsx|pdf
func (h *ExportHandler) ExportSignatures(c *gin.Context) {
	var req dto.SignatureSheetQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "group_id, year y month son obligatorios")
		return
	}

	if req.Format == "pdf" {
		buf, filename, err := h.exportSvc.SignatureSheetPDF(c.Request.Context(), &req)
		if err != nil {
			handleExportError(c, err)
			return
		}
		response.Attachment(c, contentTypePDF, filename, buf.Bytes())
		return
	}

	buf, filename, err := h.exportSvc.SignatureSheetXLSX(c.Request.Context(), &req)
	if err != nil {
		handleExportError(c, err)
		return
	}
	response.Attachment(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportDayReport
// GET /api/v1/export/day-report?group_id=&date=
func (h *ExportHandler) ExportDayReport(c *gin.Context) {
	var req dto.DayReportQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "group_id es obligatorio")
		return
	}

	buf, filename, err := h.exportSvc.DayReportXLSX(c.Request.Context(), &req)
	if err != nil {
		handleExportError(c, err)
		return
	}
	response.Attachment(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportCalendar merged service days of a year as iCalendar
// GET /api/v1/export/calendar.ics?year=
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	var req dto.CalendarExportQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "year es obligatorio")
		return
	}

	buf, filename, err := h.exportSvc.CalendarICS(c.Request.Context(), req.Year)
	if err != nil {
		handleExportError(c, err)
		return
	}
	response.Attachment(c, contentTypeICS, filename, buf.Bytes())
}

func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 11001, err.Error())
	case errors.Is(err, service.ErrScheduleRange):
		response.BadRequest(c, 15002, err.Error())
	case errors.Is(err, service.ErrExportNoServiceDates):
		response.BadRequest(c, 18001, err.Error())
	default:
		response.InternalError(c)
	}
}
