package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"chirp/internal/database"
	"chirp/internal/ratelimit"
	"chirp/internal/regen"
)

const (
	// MaxContentLength caps post content in runes
	MaxContentLength = 1000
)

var (
	// ErrEmptyContent is returned when content is empty or whitespace-only
	ErrEmptyContent = errors.New("content must not be empty")
	// ErrContentTooLong is returned when content exceeds MaxContentLength
	ErrContentTooLong = errors.New("content too long")
	// ErrRateLimited is returned when the author exceeds the creation limit
	ErrRateLimited = errors.New("rate limited")
	// ErrInvalidInput is returned for a missing author id
	ErrInvalidInput = errors.New("invalid input")
)

// Service handles post creation
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, content string) (*Post, error)
}

type service struct {
	repo   *Repository
	gate   ratelimit.Gate
	regen  regen.Notifier
	logger *slog.Logger
}

// NewService creates a new posts service
func NewService(db database.Service, gate ratelimit.Gate, notifier regen.Notifier, logger *slog.Logger) Service {
	return &service{
		repo:   NewRepository(db),
		gate:   gate,
		regen:  notifier,
		logger: logger,
	}
}

// Create validates content, consults the rate limiter gate keyed by the
// author, persists the post and signals the static-regeneration
// collaborator for the author's profile page. The regeneration signal is
// fire-and-forget: its failure is logged by the notifier and never
// surfaces here.
func (s *service) Create(ctx context.Context, authorID uuid.UUID, content string) (*Post, error) {
	if authorID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, ErrContentTooLong
	}

	allowed, err := s.gate.Allow(ctx, "post-create:"+authorID.String())
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	post, err := s.repo.Create(ctx, authorID, content)
	if err != nil {
		return nil, err
	}

	s.regen.Notify("/profiles/" + authorID.String())

	s.logger.Info("post created",
		"post_id", post.ID,
		"user_id", post.UserID)

	return post, nil
}
