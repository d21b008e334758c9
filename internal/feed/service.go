package feed

import (
	"context"

	"github.com/google/uuid"

	"chirp/internal/database"
)

const (
	// DefaultLimit is the page size when the caller does not specify one
	DefaultLimit = 10
	// MaxLimit caps the page size a caller may request
	MaxLimit = 100
)

// Service handles feed listing
type Service interface {
	FetchPage(ctx context.Context, viewerID uuid.UUID, filter Filter, cursor *Cursor, limit int) (*Page, error)
}

type service struct {
	repo *Repository
}

// NewService creates a new feed service
func NewService(db database.Service) Service {
	return &service{repo: NewRepository(db)}
}

func (s *service) FetchPage(ctx context.Context, viewerID uuid.UUID, filter Filter, cursor *Cursor, limit int) (*Page, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	// Anonymous viewers have no follow graph, so the following-only
	// filter fails open to the unfiltered feed instead of erroring.
	if filter.Kind == FilterFollowing && viewerID == uuid.Nil {
		filter = AllPosts()
	}

	return s.repo.FetchPage(ctx, viewerID, filter, cursor, limit)
}
