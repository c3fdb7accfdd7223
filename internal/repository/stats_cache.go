package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

const statsScanBatch = 200

// StatsCache keeps rendered dashboard and history payloads in Redis as JSON
// strings with a TTL. All entries of a site share a key prefix so a write can
// drop them together.
type StatsCache struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewStatsCache constructs a StatsCache. A nil client makes every lookup a
// miss and every write a no-op.
func NewStatsCache(client redis.UniversalClient, logger *zap.Logger) *StatsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsCache{client: client, logger: logger}
}

// Get decodes the payload stored under key into dest. Missing entries and
// entries that no longer decode into dest are reported as ErrCacheMiss; the
// latter are evicted so the next write replaces them.
func (c *StatsCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return appErrors.ErrCacheMiss
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return appErrors.ErrCacheMiss
	case err != nil:
		return fmt.Errorf("read stats payload %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("evicting unreadable stats payload", zap.String("key", key), zap.Error(err))
		if delErr := c.client.Unlink(ctx, key).Err(); delErr != nil {
			c.logger.Warn("stats payload eviction failed", zap.String("key", key), zap.Error(delErr))
		}
		return appErrors.Wrap(err, appErrors.ErrCacheMiss.Code, appErrors.ErrCacheMiss.Status, "unreadable stats payload")
	}
	return nil
}

// Set stores payload under key for ttl. A non-positive ttl stores nothing so
// stale statistics can never outlive their configuration.
func (c *StatsCache) Set(ctx context.Context, key string, payload interface{}, ttl time.Duration) error {
	if c.client == nil || ttl <= 0 {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode stats payload %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, body, ttl).Err(); err != nil {
		return fmt.Errorf("write stats payload %s: %w", key, err)
	}
	return nil
}

// DeleteByPattern unlinks every key matching pattern, one scan page at a time.
func (c *StatsCache) DeleteByPattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}
	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, statsScanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan stats payloads %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			n, err := c.client.Unlink(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("unlink stats payloads %s: %w", pattern, err)
			}
			removed += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	c.logger.Debug("stats payloads invalidated", zap.String("pattern", pattern), zap.Int64("removed", removed))
	return nil
}
