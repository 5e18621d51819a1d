// Package cache provides the Redis-backed saved-identifier cache.
// The cache is an optimization only: when Redis is absent or failing,
// every lookup is a miss and callers fall through to the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vothanhthong/yummyai/internal/infrastructure/config"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	"go.uber.org/zap"
)

const identifierTTL = 10 * time.Minute

// NewRedisClient creates the shared Redis client, or nil when the
// cache is disabled.
func NewRedisClient(cfg *config.Config, logger *zap.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis cache disabled, saved-identifier lookups go to the database")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, continuing without cache", zap.Error(err))
	}

	return client
}

// IdentifierCache implements outbound.IdentifierCache on Redis.
type IdentifierCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewIdentifierCache creates the cache. A nil client yields a cache
// that always misses.
func NewIdentifierCache(client *redis.Client, logger *zap.Logger) outbound.IdentifierCache {
	return &IdentifierCache{client: client, logger: logger}
}

func identifierKey(userID string) string {
	return fmt.Sprintf("yummyai:saved_identifiers:%s", userID)
}

// Get returns the cached identifier set, or a miss.
func (c *IdentifierCache) Get(ctx context.Context, userID string) ([]string, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, identifierKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("identifier cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var identifiers []string
	if err := json.Unmarshal(raw, &identifiers); err != nil {
		c.logger.Warn("identifier cache entry corrupt, dropping", zap.Error(err))
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return identifiers, true
}

// Set stores the identifier set with a TTL.
func (c *IdentifierCache) Set(ctx context.Context, userID string, identifiers []string) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(identifiers)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, identifierKey(userID), raw, identifierTTL).Err(); err != nil {
		c.logger.Warn("identifier cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached set after a cookbook mutation.
func (c *IdentifierCache) Invalidate(ctx context.Context, userID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, identifierKey(userID)).Err(); err != nil {
		c.logger.Warn("identifier cache invalidation failed", zap.Error(err))
	}
}
