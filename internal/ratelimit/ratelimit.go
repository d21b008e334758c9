// Package ratelimit gates write-path mutations behind a per-key sliding
// window. The window bookkeeping lives in Redis so every instance of the
// service shares the same counters; callers only see allow/deny.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultLimit is the number of allowed actions per window
	DefaultLimit = 5
	// DefaultWindow is the sliding window length
	DefaultWindow = time.Minute
)

// Gate decides whether an action keyed by actor may proceed now
type Gate interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisGate implements Gate over a Redis sorted set per key: members are
// action timestamps, scores are unix nanos, and the window slides by
// trimming scores older than now-window before counting.
type RedisGate struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *slog.Logger
}

// NewRedisGate creates a Redis-backed gate. A nil-safe degraded mode is
// handled in Allow: if Redis is unreachable the gate logs and allows,
// matching how the rest of the stack treats an unavailable cache.
func NewRedisGate(addr, password string, db int, limit int, window time.Duration, logger *slog.Logger) *RedisGate {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if limit < 1 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &RedisGate{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow records the attempt and reports whether it fits in the window
func (g *RedisGate) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()
	redisKey := "ratelimit:" + key
	windowStart := now.Add(-g.window).UnixNano()

	pipe := g.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.New().String(),
	})
	card := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, g.window)

	if _, err := pipe.Exec(ctx); err != nil {
		g.logger.Warn("rate limiter backend unavailable, allowing",
			"key", key,
			"error", err.Error())
		return true, nil
	}

	count := card.Val()
	if count > int64(g.limit) {
		return false, nil
	}
	return true, nil
}

// Close releases the underlying Redis client
func (g *RedisGate) Close() error {
	return g.client.Close()
}
