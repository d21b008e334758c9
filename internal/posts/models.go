package posts

import (
	"time"

	"github.com/google/uuid"
)

// Post is a created post row. Content is immutable after creation and
// posts are never deleted; like counts live in the likes relation.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest is the request body for creating a post
type CreateRequest struct {
	Content string `json:"content" binding:"required"`
}
