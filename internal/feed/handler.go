package feed

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chirp/internal/identity"
)

// Handler handles HTTP requests for feed listing
type Handler struct {
	svc Service
}

// NewHandler creates a new feed handler
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/feed?only_following=&user_id=&cursor=&limit=
func (h *Handler) List(c *gin.Context) {
	viewerID := uuid.Nil
	if viewer, ok := identity.FromContext(c); ok {
		viewerID = viewer.UserID
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cursor *Cursor
	if raw := c.Query("cursor"); raw != "" {
		decoded, err := DecodeCursor(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
			return
		}
		cursor = &decoded
	}

	limit := DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	page, err := h.svc.FetchPage(c.Request.Context(), viewerID, filter, cursor, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feed"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func filterFromQuery(c *gin.Context) (Filter, error) {
	onlyFollowing := c.Query("only_following") == "true"
	userIDStr := c.Query("user_id")

	if onlyFollowing && userIDStr != "" {
		return Filter{}, errors.New("only_following and user_id cannot be combined")
	}

	if userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return Filter{}, errors.New("invalid user_id")
		}
		return ByAuthor(userID), nil
	}

	if onlyFollowing {
		return FollowingOnly(), nil
	}
	return AllPosts(), nil
}
