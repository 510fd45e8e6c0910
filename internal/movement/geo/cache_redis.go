package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
)

const (
	cacheKeyPrefix  = "geo:nearest:"
	DefaultCacheTTL = 24 * time.Hour
)

// CachedResolver is a read-through Redis cache in front of another resolver.
// Nearest lookups are keyed by coordinates rounded to three decimals (about
// 100 m); misses are cached too. ByField is passed through.
//
// Redis failures never fail a lookup: the inner resolver answers instead.
type CachedResolver struct {
	inner  ports.PortResolver
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// CacheOption configures a CachedResolver.
type CacheOption func(*CachedResolver)

// WithCacheTTL sets how long resolved coordinates are kept.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *CachedResolver) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedResolver) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCachedResolver wraps inner with a Redis cache.
func NewCachedResolver(inner ports.PortResolver, client *redis.Client, opts ...CacheOption) *CachedResolver {
	c := &CachedResolver{
		inner:  inner,
		client: client,
		ttl:    DefaultCacheTTL,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cachedPort is the stored form of a PortMatch.
type cachedPort struct {
	Code      string   `json:"code,omitempty"`
	IHSPortID string   `json:"ihs_port_id,omitempty"`
	Name      string   `json:"name,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%s%.3f:%.3f", cacheKeyPrefix, lat, lon)
}

func (c *CachedResolver) Nearest(ctx context.Context, lat, lon float64) (models.PortMatch, error) {
	key := cacheKey(lat, lon)
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if port, ok := decodePort(raw); ok {
			return port, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "port cache read failed", "error", err)
	}

	port, err := c.inner.Nearest(ctx, lat, lon)
	if err != nil {
		return models.NoMatch, err
	}
	c.store(ctx, map[string]models.PortMatch{key: port})
	return port, nil
}

func (c *CachedResolver) ByField(ctx context.Context, field ports.PortField, value string) (models.PortMatch, error) {
	return c.inner.ByField(ctx, field, value)
}

// NearestBatch reads all keys with one MGET, resolves only the misses through
// the inner resolver in a single batch, then writes them back pipelined.
func (c *CachedResolver) NearestBatch(ctx context.Context, positions []models.Position) ([]models.PortMatch, error) {
	out := make([]models.PortMatch, len(positions))

	keys := make([]string, 0, len(positions))
	index := make([]int, 0, len(positions))
	for i, p := range positions {
		if !p.HasFix() {
			continue
		}
		lat, lon := p.LatLon()
		keys = append(keys, cacheKey(lat, lon))
		index = append(index, i)
	}
	if len(keys) == 0 {
		return out, nil
	}

	cached, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.WarnContext(ctx, "port cache batch read failed", "error", err)
		cached = make([]any, len(keys))
	}

	var (
		missPositions []models.Position
		missSlots     []int
	)
	for j, v := range cached {
		if s, ok := v.(string); ok {
			if port, ok := decodePort([]byte(s)); ok {
				out[index[j]] = port
				continue
			}
		}
		missPositions = append(missPositions, positions[index[j]])
		missSlots = append(missSlots, j)
	}
	if len(missPositions) == 0 {
		return out, nil
	}

	resolved, err := c.inner.NearestBatch(ctx, missPositions)
	if err != nil {
		return nil, err
	}
	fresh := make(map[string]models.PortMatch, len(resolved))
	for k, port := range resolved {
		j := missSlots[k]
		out[index[j]] = port
		fresh[keys[j]] = port
	}
	c.store(ctx, fresh)
	return out, nil
}

func (c *CachedResolver) store(ctx context.Context, entries map[string]models.PortMatch) {
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, port := range entries {
			raw, err := json.Marshal(cachedPort(port))
			if err != nil {
				return err
			}
			pipe.Set(ctx, key, raw, c.ttl)
		}
		return nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "port cache write failed", "error", err)
	}
}

func decodePort(raw []byte) (models.PortMatch, bool) {
	var cp cachedPort
	if err := json.Unmarshal(raw, &cp); err != nil {
		return models.NoMatch, false
	}
	return models.PortMatch(cp), true
}
