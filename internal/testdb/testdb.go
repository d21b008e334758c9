// Package testdb provisions a throwaway Postgres for integration tests
// using testcontainers, applies the service schema and exposes small
// seeding helpers. Tests that call Start skip automatically when no
// container runtime is available.
package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"chirp/internal/database"
)

const schema = `
CREATE TABLE users (
	id uuid PRIMARY KEY,
	name text,
	image text
);

CREATE TABLE posts (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id uuid NOT NULL REFERENCES users (id),
	content text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX posts_feed_order_idx ON posts (created_at DESC, id DESC);

CREATE TABLE likes (
	user_id uuid NOT NULL REFERENCES users (id),
	post_id uuid NOT NULL REFERENCES posts (id),
	created_at timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, post_id)
);

CREATE TABLE follows (
	follower_id uuid NOT NULL REFERENCES users (id),
	following_id uuid NOT NULL REFERENCES users (id),
	PRIMARY KEY (follower_id, following_id)
);
`

// Start spins up a Postgres container with the service schema applied
// and returns a database service bound to it. The container and the
// connection are torn down with the test.
func Start(t *testing.T) database.Service {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("chirp_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("container runtime unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewWithDSN(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.Exec(ctx, schema)
	require.NoError(t, err)

	return db
}

// SeedUser inserts a user row and returns its id
func SeedUser(t *testing.T, db database.Service, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO users (id, name, image) VALUES ($1, $2, $3)`,
		id, name, "https://example.com/"+name+".png")
	require.NoError(t, err)
	return id
}

// SeedPost inserts a post with an explicit creation time and returns its id
func SeedPost(t *testing.T, db database.Service, authorID uuid.UUID, content string, createdAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO posts (id, user_id, content, created_at) VALUES ($1, $2, $3, $4)`,
		id, authorID, content, createdAt)
	require.NoError(t, err)
	return id
}

// SeedFollow inserts a follower -> following edge
func SeedFollow(t *testing.T, db database.Service, followerID, followingID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)`,
		followerID, followingID)
	require.NoError(t, err)
}
