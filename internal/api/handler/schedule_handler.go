package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// ScheduleHandler service-day calendar endpoints
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetYear generated rotation of a year
// GET /api/v1/schedule/year/:year
func (h *ScheduleHandler) GetYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(c, 10001, "año inválido")
		return
	}

	resp, err := h.scheduleSvc.GetYear(c.Request.Context(), year)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// GetCalendar merged month view
// GET /api/v1/schedule?year=&month=
func (h *ScheduleHandler) GetCalendar(c *gin.Context) {
	var req dto.CalendarQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "year y month son obligatorios")
		return
	}

	resp, err := h.scheduleSvc.GetCalendar(c.Request.Context(), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// GetDay merged view of a date
// GET /api/v1/schedule/days/:date
func (h *ScheduleHandler) GetDay(c *gin.Context) {
	resp, err := h.scheduleSvc.GetDay(c.Request.Context(), c.Param("date"))
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// UpdateDay assigns or frees the group of a date
// PUT /api/v1/schedule/days/:date
func (h *ScheduleHandler) UpdateDay(c *gin.Context) {
	var req dto.UpdateServiceDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	resp, err := h.scheduleSvc.UpdateServiceDay(c.Request.Context(), c.Param("date"), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// MarkHoliday toggles the holiday flag of a date
// PUT /api/v1/schedule/days/:date/holiday
func (h *ScheduleHandler) MarkHoliday(c *gin.Context) {
	var req dto.MarkHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "is_holiday es obligatorio")
		return
	}

	resp, err := h.scheduleSvc.MarkHoliday(c.Request.Context(), c.Param("date"), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// SeedYear persists the generated rotation of a year
// POST /api/v1/schedule/seed
func (h *ScheduleHandler) SeedYear(c *gin.Context) {
	var req dto.SeedScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "año inválido")
		return
	}

	resp, err := h.scheduleSvc.SeedYear(c.Request.Context(), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

func handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 11001, err.Error())
	case errors.Is(err, service.ErrNoServiceScheduled):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrScheduleRange):
		response.BadRequest(c, 15002, err.Error())
	default:
		response.InternalError(c)
	}
}
