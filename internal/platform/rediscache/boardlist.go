// Package rediscache provides the Redis-backed read-through cache for the
// per-user board listing. Policy is invalidate-on-write with a TTL safety net
// bounding staleness from any missed invalidation path.
package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

// BoardListCache caches the board listing per requesting user. Every method
// is best-effort: redis failures degrade to cache misses or skipped writes
// and never fail the surrounding operation.
type BoardListCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewBoardListCache creates a cache using the provided Redis client and TTL.
// A nil client disables caching entirely; every Get is a miss.
func NewBoardListCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *BoardListCache {
	if ttl < 0 {
		ttl = 0
	}
	if log == nil {
		log = slog.Default()
	}

	return &BoardListCache{
		redis:  client,
		ttl:    ttl,
		logger: log.With(slog.String("component", "board_list_cache")),
	}
}

// Get returns the cached board listing for userID, or ok == false on a miss.
// Corrupt payloads are deleted so the next read repopulates cleanly.
func (c *BoardListCache) Get(ctx context.Context, userID uuid.UUID) ([]domain.Board, bool) {
	if c.redis == nil {
		return nil, false
	}

	key := boardListKey(userID)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.FromContextOrDefault(ctx, c.logger).Warn("board list cache read failed",
				slog.String("error", err.Error()),
				slog.String("key", key))
		}
		return nil, false
	}

	var boards []domain.Board
	if err := json.Unmarshal(data, &boards); err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("corrupt board list cache entry, deleting",
			slog.String("error", err.Error()),
			slog.String("key", key))
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}

	return boards, true
}

// Set stores the board listing for userID with the configured TTL.
// The cached value is a pure function of persisted state at read time, so
// concurrent repopulations racing on the same key are safe: last write wins.
func (c *BoardListCache) Set(ctx context.Context, userID uuid.UUID, boards []domain.Board) {
	if c.redis == nil || c.ttl == 0 {
		return
	}

	data, err := json.Marshal(boards)
	if err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("failed to marshal board list for cache",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return
	}

	if err := c.redis.Set(ctx, boardListKey(userID), data, c.ttl).Err(); err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("board list cache write failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
	}
}

// Invalidate drops the cached listing for userID so the next read recomputes
// from the system of record.
func (c *BoardListCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c.redis == nil {
		return
	}

	if err := c.redis.Del(ctx, boardListKey(userID)).Err(); err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("board list cache invalidation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
	}
}

func boardListKey(userID uuid.UUID) string {
	return "user:" + userID.String() + ":boards"
}
