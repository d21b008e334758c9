package feed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"chirp/internal/database"
)

// Repository handles all database reads for feeds
type Repository struct {
	db database.Service
}

// NewRepository creates a new feed repository
func NewRepository(db database.Service) *Repository {
	return &Repository{db: db}
}

// FetchPage returns one page of posts for the given filter, ordered by
// (created_at DESC, id DESC). It fetches limit+1 rows; when the extra
// row comes back it becomes the next cursor (the first row of the next
// page), so repeated traversal covers every qualifying post exactly once.
//
// viewerID drives the liked_by_me projection; uuid.Nil means anonymous
// and short-circuits to false without touching the likes relation.
func (r *Repository) FetchPage(ctx context.Context, viewerID uuid.UUID, filter Filter, cursor *Cursor, limit int) (*Page, error) {
	var viewer interface{}
	if viewerID != uuid.Nil {
		viewer = viewerID
	}

	query := `
		SELECT p.id, p.content, p.created_at,
		       u.id, u.name, u.image,
		       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
		       CASE WHEN $1::uuid IS NULL THEN FALSE
		            ELSE EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1) END AS liked_by_me
		FROM posts p
		JOIN users u ON u.id = p.user_id
	`
	args := []interface{}{viewer}
	argPos := 2

	where := ""
	switch filter.Kind {
	case FilterByAuthor:
		where = fmt.Sprintf("p.user_id = $%d", argPos)
		args = append(args, filter.AuthorID)
		argPos++
	case FilterFollowing:
		// Callers normalize the anonymous case away before this point;
		// viewer is non-NULL whenever this branch runs.
		where = fmt.Sprintf("EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $%d AND f.following_id = p.user_id)", argPos)
		args = append(args, viewerID)
		argPos++
	}

	if cursor != nil {
		// Row-wise comparison matches the DESC total order: the cursor
		// row itself is included as the first row of this page.
		clause := fmt.Sprintf("(p.created_at, p.id) <= ($%d, $%d)", argPos, argPos+1)
		args = append(args, cursor.CreatedAt, cursor.ID)
		argPos += 2
		if where == "" {
			where = clause
		} else {
			where = where + " AND " + clause
		}
	}

	if where != "" {
		query += " WHERE " + where
	}

	query += fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d", argPos)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var (
			post  Post
			name  sql.NullString
			image sql.NullString
		)
		err := rows.Scan(
			&post.ID,
			&post.Content,
			&post.CreatedAt,
			&post.User.ID,
			&name,
			&image,
			&post.LikeCount,
			&post.LikedByMe,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		post.User.Name = name.String
		post.User.Image = image.String
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed rows: %w", err)
	}

	page := &Page{Posts: posts}
	if len(posts) > limit {
		next := posts[limit]
		page.Posts = posts[:limit]
		page.NextCursor = &Cursor{ID: next.ID, CreatedAt: next.CreatedAt}
	}

	return page, nil
}
