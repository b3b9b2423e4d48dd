package handler

import (
	"context"
	"net/http"

	"stagelink-backend/internal/domains/show/repository"
	"stagelink-backend/internal/domains/show/service"
	"stagelink-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	moderation service.ModerationInterface
}

func NewAdminHandler(moderation service.ModerationInterface) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

// List handles GET /admin/shows?status=pending|approved|rejected|all&deleted=true
func (h *AdminHandler) List(c *gin.Context) {
	filter := repository.AdminFilter{
		Status:  c.DefaultQuery("status", "all"),
		Deleted: c.Query("deleted") == "true",
	}

	shows, err := h.moderation.List(c.Request.Context(), filter)
	if err != nil {
		respondShowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, shows)
}

// Approve handles POST /admin/shows/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	h.transition(c, h.moderation.Approve)
}

// Reject handles POST /admin/shows/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	h.transition(c, h.moderation.Reject)
}

// Reset handles POST /admin/shows/:id/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	h.transition(c, h.moderation.Reset)
}

// Broadcast handles POST /admin/shows/:id/broadcast
func (h *AdminHandler) Broadcast(c *gin.Context) {
	h.transition(c, h.moderation.Broadcast)
}

// Delete handles DELETE /admin/shows/:id
func (h *AdminHandler) Delete(c *gin.Context) {
	h.transition(c, h.moderation.SoftDelete)
}

// Restore handles POST /admin/shows/:id/restore
func (h *AdminHandler) Restore(c *gin.Context) {
	h.transition(c, h.moderation.Restore)
}

// SetFeatured handles PUT /admin/shows/:id/featured
func (h *AdminHandler) SetFeatured(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid show id")
		return
	}

	var body struct {
		Featured bool `json:"featured"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.moderation.SetFeatured(c.Request.Context(), showID, body.Featured); err != nil {
		respondShowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"featured": body.Featured})
}

// transition runs one of the id-only moderation operations
func (h *AdminHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error) {
	showID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid show id")
		return
	}

	if err := fn(c.Request.Context(), showID); err != nil {
		respondShowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": showID})
}
