package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the screening runner.
type Metrics struct {
	RunOutcomes *prometheus.CounterVec
}

// New creates a new Metrics instance with all runner metrics registered.
func New() *Metrics {
	return &Metrics{
		RunOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_screening_runs_total",
			Help: "Screening check runs by outcome",
		}, []string{"check", "outcome"}), // outcome: "done", "failed", "timeout", "skipped", "invalid"
	}
}

// IncrementOutcome records a run outcome.
func (m *Metrics) IncrementOutcome(check, outcome string) {
	if m != nil {
		m.RunOutcomes.WithLabelValues(check, outcome).Inc()
	}
}
