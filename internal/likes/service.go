package likes

import (
	"errors"
	"fmt"

	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"chirp/internal/database"
)

var (
	// ErrPostNotFound is returned when toggling a like on a post that
	// does not exist
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidInput is returned for missing identifiers
	ErrInvalidInput = errors.New("invalid input")
)

// foreignKeyViolation is the SQLSTATE raised when likes.post_id points
// at a nonexistent post
const foreignKeyViolation = "23503"

// Service handles like toggling
type Service interface {
	// Toggle flips the (actor, post) like relation and reports the
	// direction of change: true when the like was added, false when it
	// was removed.
	Toggle(ctx context.Context, actorID, postID uuid.UUID) (bool, error)

	// Count returns the number of existing likes for a post
	Count(ctx context.Context, postID uuid.UUID) (int64, error)
}

type service struct {
	db database.Service
}

// NewService creates a new likes service
func NewService(db database.Service) Service {
	return &service{db: db}
}

// Toggle relies on the (user_id, post_id) primary key for correctness
// under concurrent toggles: the insert either claims the pair or affects
// zero rows, so at most one like row per pair can ever exist.
func (s *service) Toggle(ctx context.Context, actorID, postID uuid.UUID) (bool, error) {
	if actorID == uuid.Nil || postID == uuid.Nil {
		return false, ErrInvalidInput
	}

	const insert = `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`
	res, err := s.db.Exec(ctx, insert, actorID, postID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return false, ErrPostNotFound
		}
		return false, fmt.Errorf("insert like: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}
	if affected > 0 {
		return true, nil
	}

	const del = `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`
	if _, err := s.db.Exec(ctx, del, actorID, postID); err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return false, nil
}

func (s *service) Count(ctx context.Context, postID uuid.UUID) (int64, error) {
	const q = `SELECT COUNT(*) FROM likes WHERE post_id = $1`
	var cnt int64
	if err := s.db.QueryRow(ctx, q, postID).Scan(&cnt); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return cnt, nil
}
