package posts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"chirp/internal/database"
)

// Repository handles database writes for posts
type Repository struct {
	db database.Service
}

// NewRepository creates a new posts repository
func NewRepository(db database.Service) *Repository {
	return &Repository{db: db}
}

// Create inserts a new post and returns the stored row
func (r *Repository) Create(ctx context.Context, authorID uuid.UUID, content string) (*Post, error) {
	const query = `
		INSERT INTO posts (user_id, content)
		VALUES ($1, $2)
		RETURNING id, user_id, content, created_at
	`

	post := &Post{}
	err := r.db.QueryRow(ctx, query, authorID, content).Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}
