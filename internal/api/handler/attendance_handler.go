package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// AttendanceHandler attendance endpoints
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// RegisterAttendance one record per beneficiary and day
// POST /api/v1/attendances
func (h *AttendanceHandler) RegisterAttendance(c *gin.Context) {
	var req dto.RegisterAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos: "+err.Error())
		return
	}

	a, err := h.attendanceSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.Created(c, a)
}

// ListAttendance records of a group on a date
// GET /api/v1/attendances?group_id=&date=
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var req dto.ListAttendanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "group_id es obligatorio")
		return
	}

	list, err := h.attendanceSvc.ListByGroupAndDate(c.Request.Context(), &req)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

func handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceDuplicate):
		response.Conflict(c, 13001, err.Error())
	case errors.Is(err, service.ErrBeneficiaryNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
