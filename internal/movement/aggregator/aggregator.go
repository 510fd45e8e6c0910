package aggregator

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"seawatch/internal/movement/ports"
	"seawatch/internal/platform/config"
)

// Warmer refreshes the aggregator cache for a query.
type Warmer interface {
	Warm(ctx context.Context, q ports.MovementQuery) error
}

// Option configures New.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	onStateChange func(from, to string)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStateChange observes breaker transitions.
func WithStateChange(fn func(from, to string)) Option {
	return func(o *options) {
		o.onStateChange = fn
	}
}

// New builds the full aggregator stack for cfg. The returned Cache is both
// the ports.Aggregator used by runs and the Warmer used by the warm-up worker.
func New(cfg config.AggregatorConfig, client *redis.Client, opts ...Option) *Cache {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	httpClient := NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	breaker := NewBreaker(httpClient, BreakerSettings{
		MaxFailures:   cfg.BreakerMaxFailures,
		OpenTimeout:   cfg.BreakerOpenTimeout,
		OnStateChange: o.onStateChange,
	}, o.logger)
	return NewCache(breaker, client, cfg.CacheTTL, o.logger)
}
