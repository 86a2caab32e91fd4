package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// GroupHandler service group endpoints
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler creates a GroupHandler
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// ListGroups groups with active member counts
// GET /api/v1/groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": groups})
}

// GetGroup group with its roster
// GET /api/v1/groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := bindID(c, "ID de grupo inválido")
	if !ok {
		return
	}

	group, err := h.groupSvc.GetWithRoster(c.Request.Context(), id)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.OK(c, group)
}

// SeedGroups creates the rotation groups and the waiting list
// POST /api/v1/groups/seed
func (h *GroupHandler) SeedGroups(c *gin.Context) {
	groups, err := h.groupSvc.Seed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": groups})
}

func handleGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 11001, err.Error())
	default:
		response.InternalError(c)
	}
}
