// Package identity extracts the requesting user from headers injected by
// the API gateway after session validation. The gateway is the identity
// provider's boundary; services never see session tokens, only
// X-User-ID, X-User-Name and X-User-Image.
package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const viewerKey = "viewer"

// Viewer is the identity attached to a request. A zero Viewer with
// Anonymous() == true represents an unauthenticated request.
type Viewer struct {
	UserID uuid.UUID
	Name   string
	Image  string
}

// Anonymous reports whether the viewer is unauthenticated
func (v Viewer) Anonymous() bool {
	return v.UserID == uuid.Nil
}

// RequireAuth rejects requests that carry no valid user identity
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.GetHeader("X-User-ID")
		if userIDStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: missing user authentication",
			})
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: invalid user ID",
			})
			return
		}

		c.Set(viewerKey, Viewer{
			UserID: userID,
			Name:   c.GetHeader("X-User-Name"),
			Image:  c.GetHeader("X-User-Image"),
		})

		c.Next()
	}
}

// OptionalAuth attaches the viewer when identity headers are present but
// lets anonymous requests through. Endpoints behind it must treat a
// missing viewer as the anonymous viewer.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userIDStr := c.GetHeader("X-User-ID"); userIDStr != "" {
			if userID, err := uuid.Parse(userIDStr); err == nil {
				c.Set(viewerKey, Viewer{
					UserID: userID,
					Name:   c.GetHeader("X-User-Name"),
					Image:  c.GetHeader("X-User-Image"),
				})
			}
		}
		c.Next()
	}
}

// FromContext extracts the viewer from the gin context. The second return
// value is false for anonymous requests.
func FromContext(c *gin.Context) (Viewer, bool) {
	value, exists := c.Get(viewerKey)
	if !exists {
		return Viewer{}, false
	}
	viewer, ok := value.(Viewer)
	if !ok || viewer.Anonymous() {
		return Viewer{}, false
	}
	return viewer, true
}
