package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// BeneficiaryHandler beneficiary endpoints
type BeneficiaryHandler struct {
	beneficiarySvc service.BeneficiaryService
}

// NewBeneficiaryHandler creates a BeneficiaryHandler
func NewBeneficiaryHandler(beneficiarySvc service.BeneficiaryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiarySvc: beneficiarySvc}
}

// ListBeneficiaries paginated list with group, status and text filters
// GET /api/v1/beneficiaries
func (h *BeneficiaryHandler) ListBeneficiaries(c *gin.Context) {
	var req dto.ListBeneficiariesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	list, total, err := h.beneficiarySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetBeneficiary beneficiary with children and recent attendance
// GET /api/v1/beneficiaries/:id
func (h *BeneficiaryHandler) GetBeneficiary(c *gin.Context) {
	id, ok := bindID(c, "ID de beneficiario inválido")
	if !ok {
		return
	}

	detail, err := h.beneficiarySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleBeneficiaryError(c, err)
		return
	}

	response.OK(c, detail)
}

// CreateBeneficiary
// POST /api/v1/beneficiaries
func (h *BeneficiaryHandler) CreateBeneficiary(c *gin.Context) {
	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos: "+err.Error())
		return
	}

	b, err := h.beneficiarySvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleBeneficiaryError(c, err)
		return
	}

	response.Created(c, b)
}

// UpdateBeneficiary partial update guarded by version
// PUT /api/v1/beneficiaries/:id
func (h *BeneficiaryHandler) UpdateBeneficiary(c *gin.Context) {
	id, ok := bindID(c, "ID de beneficiario inválido")
	if !ok {
		return
	}

	var req dto.UpdateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos: "+err.Error())
		return
	}

	b, err := h.beneficiarySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleBeneficiaryError(c, err)
		return
	}

	response.OK(c, b)
}

// MoveBeneficiary reassigns the group, null sends to the waiting list
// PUT /api/v1/beneficiaries/:id/group
func (h *BeneficiaryHandler) MoveBeneficiary(c *gin.Context) {
	id, ok := bindID(c, "ID de beneficiario inválido")
	if !ok {
		return
	}

	var req dto.MoveBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	b, err := h.beneficiarySvc.Move(c.Request.Context(), id, &req)
	if err != nil {
		handleBeneficiaryError(c, err)
		return
	}

	response.OK(c, b)
}

// SetStatus Activo / Inactivo
// PUT /api/v1/beneficiaries/:id/status
func (h *BeneficiaryHandler) SetStatus(c *gin.Context) {
	id, ok := bindID(c, "ID de beneficiario inválido")
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "estado inválido, use Activo o Inactivo")
		return
	}

	b, err := h.beneficiarySvc.SetStatus(c.Request.Context(), id, &req)
	if err != nil {
		handleBeneficiaryError(c, err)
		return
	}

	response.OK(c, b)
}

func handleBeneficiaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBeneficiaryNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrBeneficiaryNationalIDUse):
		response.Conflict(c, 12002, err.Error())
	case errors.Is(err, service.ErrBeneficiaryVersionStale):
		response.Conflict(c, 12003, err.Error())
	case errors.Is(err, service.ErrGroupNotFound):
		response.BadRequest(c, 11001, err.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
