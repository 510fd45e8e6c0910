package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for movement reconciliation.
type Metrics struct {
	// Whole-run latency by strategy
	RunLatency *prometheus.HistogramVec

	// Per-call latency of external sources
	SourceLatency *prometheus.HistogramVec

	// Aggregate severity of finished runs
	RunSeverity *prometheus.CounterVec

	OutliersFlagged prometheus.Counter

	// Aggregator failures by error category
	AggregatorFailures *prometheus.CounterVec

	// Breaker transitions
	BreakerTransitions *prometheus.CounterVec

	WarmupEnqueued *prometheus.CounterVec
	WarmupResults  *prometheus.CounterVec
}

// New creates a new Metrics instance with all movement metrics registered.
func New() *Metrics {
	return &Metrics{
		RunLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seawatch_movement_run_duration_seconds",
			Help:    "Duration of a movement reconciliation run",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"strategy"}),

		SourceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seawatch_movement_source_duration_seconds",
			Help:    "Duration of calls to external movement sources",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}), // source: "positions", "port_calls", "port_resolver", "aggregator"

		RunSeverity: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_movement_runs_total",
			Help: "Finished movement runs by aggregate severity",
		}, []string{"severity"}),

		OutliersFlagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seawatch_movement_outliers_total",
			Help: "Positions rejected as outliers",
		}),

		AggregatorFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_movement_aggregator_failures_total",
			Help: "Aggregator calls that failed and were degraded",
		}, []string{"category"}),

		BreakerTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_movement_breaker_transitions_total",
			Help: "Aggregator circuit breaker state changes",
		}, []string{"from", "to"}),

		WarmupEnqueued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_movement_warmup_enqueued_total",
			Help: "Aggregator warm-ups handed to the queue",
		}, []string{"transport"}),

		WarmupResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_movement_warmup_results_total",
			Help: "Aggregator warm-ups processed by the worker",
		}, []string{"result"}), // result: "ok", "failed", "dropped"
	}
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(strategy, severity string, d time.Duration) {
	if m != nil {
		m.RunLatency.WithLabelValues(strategy).Observe(d.Seconds())
		m.RunSeverity.WithLabelValues(severity).Inc()
	}
}

// ObserveSource records the duration of one external source call.
func (m *Metrics) ObserveSource(source string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// AddOutliers counts rejected positions.
func (m *Metrics) AddOutliers(n int) {
	if m != nil && n > 0 {
		m.OutliersFlagged.Add(float64(n))
	}
}

// IncrementAggregatorFailure records a degraded aggregator call.
func (m *Metrics) IncrementAggregatorFailure(category string) {
	if m != nil {
		m.AggregatorFailures.WithLabelValues(category).Inc()
	}
}

// IncrementBreakerTransition records a breaker state change.
func (m *Metrics) IncrementBreakerTransition(from, to string) {
	if m != nil {
		m.BreakerTransitions.WithLabelValues(from, to).Inc()
	}
}

// IncrementWarmupEnqueued records a warm-up handed to transport.
func (m *Metrics) IncrementWarmupEnqueued(transport string) {
	if m != nil {
		m.WarmupEnqueued.WithLabelValues(transport).Inc()
	}
}

// IncrementWarmupResult records a processed warm-up.
func (m *Metrics) IncrementWarmupResult(result string) {
	if m != nil {
		m.WarmupResults.WithLabelValues(result).Inc()
	}
}
