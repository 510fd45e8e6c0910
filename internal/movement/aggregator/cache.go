package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"seawatch/internal/movement/ports"
)

const cacheKeyPrefix = "aggregator:movements:"

// Cache is a Redis read-through cache in front of the aggregator. Entries are
// keyed by IMO and the UTC day of the lookback start, so a warm-up enqueued by
// one run serves later runs for the same vessel that day.
type Cache struct {
	inner  ports.Aggregator
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache wraps inner with a Redis cache.
func NewCache(inner ports.Aggregator, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{inner: inner, client: client, ttl: ttl, logger: logger}
}

// CacheKey returns the Redis key for q.
func CacheKey(q ports.MovementQuery) string {
	return fmt.Sprintf("%s%s:%s", cacheKeyPrefix, q.IMO, q.Since.UTC().Format(time.DateOnly))
}

// Movements serves q from Redis when possible. Cache failures fall through
// to the inner aggregator.
func (c *Cache) Movements(ctx context.Context, q ports.MovementQuery) (ports.AggregatedMovement, error) {
	key := CacheKey(q)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var dto movementsDTO
		if decodeErr := json.Unmarshal(raw, &dto); decodeErr == nil {
			return dto.toModel(), nil
		}
		c.logger.Warn("discarding undecodable aggregator cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("aggregator cache read failed", "key", key, "error", err)
	}
	return c.fetchAndStore(ctx, q)
}

// Warm fetches q from the aggregator and stores it, ignoring any cached value.
func (c *Cache) Warm(ctx context.Context, q ports.MovementQuery) error {
	_, err := c.fetchAndStore(ctx, q)
	return err
}

func (c *Cache) fetchAndStore(ctx context.Context, q ports.MovementQuery) (ports.AggregatedMovement, error) {
	out, err := c.inner.Movements(ctx, q)
	if err != nil {
		return ports.AggregatedMovement{}, err
	}
	payload, err := json.Marshal(fromModel(out))
	if err != nil {
		c.logger.Warn("aggregator cache encode failed", "imo", q.IMO, "error", err)
		return out, nil
	}
	if err := c.client.Set(ctx, CacheKey(q), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("aggregator cache write failed", "imo", q.IMO, "error", err)
	}
	return out, nil
}
