package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// UploadHandler photo upload and image serving
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler creates an UploadHandler
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// UploadPhoto stores a beneficiary photo and returns its public URL
// POST /api/v1/uploads/photo
func (h *UploadHandler) UploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 19001, service.ErrUploadEmpty.Error())
		return
	}
	defer file.Close()

	resp, err := h.uploadSvc.SavePhoto(c.Request.Context(), file, header.Size)
	if err != nil {
		handleUploadError(c, err)
		return
	}

	response.Created(c, resp)
}

// ServeImage streams a stored image. Responses are never cached so a
// replaced photo shows up immediately.
// GET /images/*path
func (h *UploadHandler) ServeImage(c *gin.Context) {
	path, contentType, err := h.uploadSvc.Open(c.Request.Context(), c.Param("path"))
	if err != nil {
		handleUploadError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store, must-revalidate")
	c.Header("Content-Type", contentType)
	c.File(path)
}

func handleUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUploadEmpty):
		response.BadRequest(c, 19001, err.Error())
	case errors.Is(err, service.ErrUploadTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, 19002, err.Error())
	case errors.Is(err, service.ErrUploadUnsupportedType):
		response.Error(c, http.StatusUnsupportedMediaType, 19003, err.Error())
	case errors.Is(err, service.ErrUploadForbidden):
		response.Forbidden(c, 19004, err.Error())
	case errors.Is(err, service.ErrUploadNotFound):
		response.NotFound(c, 19005, err.Error())
	default:
		response.InternalError(c)
	}
}
