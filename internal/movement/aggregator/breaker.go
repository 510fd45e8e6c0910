package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"seawatch/internal/movement/ports"
	"seawatch/internal/movement/providers"
)

const breakerName = "movement-aggregator"

// Breaker short-circuits aggregator calls after consecutive failures so a
// down aggregator costs one fast error per run instead of a full timeout.
type Breaker struct {
	inner  ports.Aggregator
	cb     *gobreaker.CircuitBreaker[ports.AggregatedMovement]
	logger *slog.Logger
}

// BreakerSettings configures a Breaker.
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
	// OnStateChange is optional; used for metrics.
	OnStateChange func(from, to string)
}

// NewBreaker wraps inner.
func NewBreaker(inner ports.Aggregator, settings BreakerSettings, logger *slog.Logger) *Breaker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Breaker{inner: inner, logger: logger}
	b.cb = gobreaker.NewCircuitBreaker[ports.AggregatedMovement](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= max(settings.MaxFailures, 1)
		},
		// A vessel the aggregator does not know is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || providers.GetCategory(err) == providers.ErrorNotFound
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			if settings.OnStateChange != nil {
				settings.OnStateChange(from.String(), to.String())
			}
		},
	})
	return b
}

// Movements calls the inner aggregator through the breaker.
func (b *Breaker) Movements(ctx context.Context, q ports.MovementQuery) (ports.AggregatedMovement, error) {
	out, err := b.cb.Execute(func() (ports.AggregatedMovement, error) {
		return b.inner.Movements(ctx, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ports.AggregatedMovement{}, providers.NewProviderError(providers.ErrorCircuitOpen, providers.ProviderAggregator, "circuit open", err)
	}
	return out, err
}

// State reports the breaker state name.
func (b *Breaker) State() string {
	return b.cb.State().String()
}
