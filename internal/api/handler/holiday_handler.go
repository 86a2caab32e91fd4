package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// HolidayHandler holiday table endpoints
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler creates a HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// ListHolidays holidays of a year, configured fallback when none are stored
// GET /api/v1/holidays?year=
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	var req dto.HolidayQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "year es obligatorio")
		return
	}

	list, err := h.holidaySvc.List(c.Request.Context(), req.Year)
	if err != nil {
		handleHolidayError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateHoliday
// POST /api/v1/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "date y name son obligatorios")
		return
	}

	holiday, err := h.holidaySvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleHolidayError(c, err)
		return
	}

	response.Created(c, holiday)
}

// DeleteHoliday
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	id, ok := bindID(c, "ID de feriado inválido")
	if !ok {
		return
	}

	if err := h.holidaySvc.Delete(c.Request.Context(), id); err != nil {
		handleHolidayError(c, err)
		return
	}

	response.OK(c, nil)
}

// ImportICS loads all-day events from an uploaded ICS file.
// An optional year form field expands yearly rules into that year.
// POST /api/v1/holidays/import
func (h *HolidayHandler) ImportICS(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 16000, "suba un archivo ICS en el campo file")
		return
	}
	defer file.Close()

	year := 0
	if raw := c.PostForm("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil || year < 2000 || year > 2100 {
			response.BadRequest(c, 10001, "año inválido")
			return
		}
	}

	resp, err := h.holidaySvc.ImportICS(c.Request.Context(), file, year)
	if err != nil {
		handleHolidayError(c, err)
		return
	}

	response.Created(c, resp)
}

func handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, 16001, err.Error())
	case errors.Is(err, service.ErrHolidayExists):
		response.Conflict(c, 16002, err.Error())
	case errors.Is(err, service.ErrHolidayICSParse):
		response.BadRequest(c, 16003, err.Error())
	case errors.Is(err, service.ErrHolidayICSEmpty):
		response.BadRequest(c, 16004, err.Error())
	default:
		response.InternalError(c)
	}
}
