package warmup

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"seawatch/internal/movement/aggregator"
	"seawatch/internal/movement/metrics"
	"seawatch/internal/movement/ports"
	"seawatch/internal/platform/kafka/consumer"
)

// Worker warms the aggregator cache with bounded concurrency. Failures are
// logged and dropped.
type Worker struct {
	warmer  aggregator.Warmer
	group   *errgroup.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures a Worker.
type Option func(*Worker)

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// NewWorker creates a Worker running at most concurrency warm-ups at once.
func NewWorker(warmer aggregator.Warmer, concurrency int, opts ...Option) *Worker {
	group := &errgroup.Group{}
	group.SetLimit(max(concurrency, 1))
	w := &Worker{
		warmer: warmer,
		group:  group,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Submit starts a warm-up, blocking while all slots are busy.
func (w *Worker) Submit(ctx context.Context, q ports.MovementQuery) {
	w.group.Go(func() error {
		w.warm(ctx, q)
		return nil
	})
}

// Wait blocks until all submitted warm-ups finish.
func (w *Worker) Wait() {
	_ = w.group.Wait()
}

// Run drains requests until ctx is cancelled or requests is closed, then
// waits for in-flight warm-ups.
func (w *Worker) Run(ctx context.Context, requests <-chan ports.MovementQuery) error {
	defer w.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case q, ok := <-requests:
			if !ok {
				return nil
			}
			w.Submit(ctx, q)
		}
	}
}

// Handle consumes one warm-up message from Kafka.
func (w *Worker) Handle(ctx context.Context, msg *consumer.Message) error {
	q, err := Decode(msg.Value)
	if err != nil {
		w.metrics.IncrementWarmupResult("dropped")
		w.logger.WarnContext(ctx, "discarding malformed warm-up", "key", string(msg.Key), "error", err)
		return nil
	}
	w.Submit(ctx, q)
	return nil
}

func (w *Worker) warm(ctx context.Context, q ports.MovementQuery) {
	if err := w.warmer.Warm(ctx, q); err != nil {
		w.metrics.IncrementWarmupResult("failed")
		w.logger.WarnContext(ctx, "aggregator warm-up failed", "imo", q.IMO.String(), "error", err)
		return
	}
	w.metrics.IncrementWarmupResult("ok")
	w.logger.DebugContext(ctx, "aggregator warm-up done", "imo", q.IMO.String())
}
