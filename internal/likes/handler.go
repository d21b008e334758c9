package likes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chirp/internal/identity"
)

// ToggleResponse reports the direction a toggle moved the relation
type ToggleResponse struct {
	AddedLike bool `json:"added_like"`
}

// Handler handles HTTP requests for likes
type Handler struct {
	svc Service
}

// NewHandler creates a new likes handler
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Toggle handles POST /api/posts/:id/like
func (h *Handler) Toggle(c *gin.Context) {
	viewer, ok := identity.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	added, err := h.svc.Toggle(c.Request.Context(), viewer.UserID, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, ToggleResponse{AddedLike: added})
}
