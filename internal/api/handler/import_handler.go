package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// ImportHandler spreadsheet import endpoint
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler creates an ImportHandler
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ImportWorkbook loads the Beneficiarios and Asistencia sheets of an xlsx upload
// POST /api/v1/import
func (h *ImportHandler) ImportWorkbook(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 17000, "suba un archivo Excel en el campo file")
		return
	}
	defer file.Close()

	resp, err := h.importSvc.ImportWorkbook(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportUnreadable):
			response.BadRequest(c, 17001, err.Error())
		case errors.Is(err, service.ErrImportNoSheets):
			response.BadRequest(c, 17002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}
