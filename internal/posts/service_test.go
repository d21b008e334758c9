package posts_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"chirp/internal/posts"
	"chirp/internal/testdb"
)

// countingGate allows the first n calls and denies the rest
type countingGate struct {
	allow int
	calls int
}

func (g *countingGate) Allow(ctx context.Context, key string) (bool, error) {
	g.calls++
	return g.calls <= g.allow, nil
}

// recordingNotifier captures regeneration signals
type recordingNotifier struct {
	paths []string
}

func (n *recordingNotifier) Notify(path string) {
	n.paths = append(n.paths, path)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCreate_RejectsEmptyContent(t *testing.T) {
	// Validation runs before any storage access
	svc := posts.NewService(nil, &countingGate{allow: 100}, &recordingNotifier{}, discardLogger())

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := svc.Create(context.Background(), uuid.New(), content)
		require.ErrorIs(t, err, posts.ErrEmptyContent, "content %q", content)
	}
}

func TestCreate_RejectsOverlongContent(t *testing.T) {
	svc := posts.NewService(nil, &countingGate{allow: 100}, &recordingNotifier{}, discardLogger())

	_, err := svc.Create(context.Background(), uuid.New(), strings.Repeat("x", posts.MaxContentLength+1))
	require.ErrorIs(t, err, posts.ErrContentTooLong)
}

func TestCreate_RejectsAnonymousAuthor(t *testing.T) {
	svc := posts.NewService(nil, &countingGate{allow: 100}, &recordingNotifier{}, discardLogger())

	_, err := svc.Create(context.Background(), uuid.Nil, "hello")
	require.ErrorIs(t, err, posts.ErrInvalidInput)
}

func TestCreate_RateLimitDeniesWithoutWrite(t *testing.T) {
	db := testdb.Start(t)
	ctx := context.Background()

	author := testdb.SeedUser(t, db, "alice")
	gate := &countingGate{allow: 5}
	svc := posts.NewService(db, gate, &recordingNotifier{}, discardLogger())

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, author, "post")
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, author, "one too many")
	require.ErrorIs(t, err, posts.ErrRateLimited)

	var count int
	err = db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = $1`, author).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 5, count, "denied creation must not persist a post")
}

func TestCreate_PersistsAndSignalsRegen(t *testing.T) {
	db := testdb.Start(t)
	ctx := context.Background()

	author := testdb.SeedUser(t, db, "alice")
	notifier := &recordingNotifier{}
	svc := posts.NewService(db, &countingGate{allow: 100}, notifier, discardLogger())

	post, err := svc.Create(ctx, author, "  hello world  ")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, post.ID)
	require.Equal(t, author, post.UserID)
	require.Equal(t, "hello world", post.Content, "content is stored trimmed")
	require.False(t, post.CreatedAt.IsZero())

	require.Equal(t, []string{"/profiles/" + author.String()}, notifier.paths)
}
