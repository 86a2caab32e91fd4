package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// ServiceDayHandler day close and day report endpoints
type ServiceDayHandler struct {
	serviceDaySvc service.ServiceDayService
}

// NewServiceDayHandler creates a ServiceDayHandler
func NewServiceDayHandler(serviceDaySvc service.ServiceDayService) *ServiceDayHandler {
	return &ServiceDayHandler{serviceDaySvc: serviceDaySvc}
}

// CloseDay marks every active member without a record as absent
// POST /api/v1/service-days/close
func (h *ServiceDayHandler) CloseDay(c *gin.Context) {
	var req dto.CloseDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "group_id es obligatorio")
		return
	}

	resp, err := h.serviceDaySvc.CloseDay(c.Request.Context(), &req)
	if err != nil {
		handleServiceDayError(c, err)
		return
	}

	response.OK(c, resp)
}

// GetDayReport records and totals of a group on a date
// GET /api/v1/service-days/report?group_id=&date=
func (h *ServiceDayHandler) GetDayReport(c *gin.Context) {
	var req dto.DayReportQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "group_id es obligatorio")
		return
	}

	resp, err := h.serviceDaySvc.GetDayReport(c.Request.Context(), &req)
	if err != nil {
		handleServiceDayError(c, err)
		return
	}

	response.OK(c, resp)
}

func handleServiceDayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 11001, err.Error())
	case errors.Is(err, service.ErrCloseDayInProgress):
		response.Conflict(c, 14001, err.Error())
	default:
		response.InternalError(c)
	}
}
