// Package orchestrator produces the reconciled movement of one vessel for one
// screening and persists it onto the screening's report.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"seawatch/internal/movement/metrics"
	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	"seawatch/internal/movement/providers"
	"seawatch/internal/movement/report"
	"seawatch/internal/movement/severity"
	"seawatch/internal/movement/visits"
	"seawatch/internal/platform/config"
	id "seawatch/pkg/domain"
	"seawatch/pkg/requestcontext"
)

const tracerName = "seawatch/internal/movement/orchestrator"

// Request identifies the vessel and screening of one run. VesselID may be
// empty for ships without a transponder identity; such runs have no visits.
type Request struct {
	ScreeningID id.ScreeningID
	ShipID      id.ShipID
	IMO         id.IMO
	VesselID    id.VesselID
}

// Settings tune the local pipeline.
type Settings struct {
	Lookback          time.Duration
	SampleInterval    time.Duration
	StoppedSpeedKnots float64
	PageSize          int
	PortCallLimit     int
}

// SettingsFromConfig builds Settings from the loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Lookback:          cfg.Movement.Lookback(),
		SampleInterval:    cfg.Movement.SampleInterval,
		StoppedSpeedKnots: cfg.Movement.StoppedSpeedKnots,
		PageSize:          cfg.Positions.PageSize,
		PortCallLimit:     cfg.Movement.PortCallLimit,
	}
}

// Dependencies are the collaborators a run calls. Aggregator and Warmup are
// only required by strategies that use them.
type Dependencies struct {
	Positions  ports.PositionSource
	PortCalls  ports.PortCallSource
	Ports      ports.PortResolver
	Blacklist  ports.BlacklistLookup
	Severity   *severity.Resolver
	Reports    ports.ReportStore
	Aggregator ports.Aggregator
	Warmup     ports.WarmupQueue
}

// Orchestrator runs movement reconciliation. It holds no per-run state and is
// safe for concurrent runs.
type Orchestrator struct {
	deps     Dependencies
	visits   *visits.Builder
	settings Settings
	strategy Strategy
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStrategy sets the strategy; the default is StrategyLocalOnly.
func WithStrategy(s Strategy) Option {
	return func(o *Orchestrator) {
		o.strategy = s
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New validates deps against the chosen strategy.
func New(deps Dependencies, settings Settings, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		deps:     deps,
		settings: settings,
		strategy: StrategyLocalOnly,
		tracer:   otel.Tracer(tracerName),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	switch {
	case deps.Positions == nil, deps.PortCalls == nil, deps.Ports == nil,
		deps.Blacklist == nil, deps.Severity == nil, deps.Reports == nil:
		return nil, errors.New("orchestrator: positions, port calls, port resolver, blacklist, severity and reports are required")
	case o.strategy.callsAggregator() && deps.Aggregator == nil:
		return nil, fmt.Errorf("orchestrator: strategy %s requires an aggregator", o.strategy)
	case o.strategy.warmsAggregator() && deps.Warmup == nil:
		return nil, fmt.Errorf("orchestrator: strategy %s requires a warm-up queue", o.strategy)
	case settings.Lookback <= 0:
		return nil, errors.New("orchestrator: lookback must be positive")
	}
	o.visits = visits.NewBuilder(deps.Blacklist)
	return o, nil
}

// Strategy returns the resolved strategy.
func (o *Orchestrator) Strategy() Strategy {
	return o.strategy
}

// Run reconciles req and writes the result onto the screening's report.
// Errors from the required sources or the report store are returned; the
// aggregator never fails a run.
func (o *Orchestrator) Run(ctx context.Context, req Request) (models.Movement, error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "movement.run", trace.WithAttributes(
		attribute.String("screening_id", req.ScreeningID.String()),
		attribute.String("imo", req.IMO.String()),
		attribute.String("strategy", o.strategy.String()),
	))
	defer span.End()

	movement, err := o.Reconcile(ctx, req)
	if err != nil {
		return models.Movement{}, recordError(span, err)
	}

	r, err := o.deps.Reports.GetOrCreate(ctx, req.ScreeningID, report.Defaults{
		ShipID: req.ShipID,
		IMO:    req.IMO,
		Now:    movement.ComputedAt,
	})
	if err != nil {
		return models.Movement{}, recordError(span, fmt.Errorf("loading report: %w", err))
	}
	if err := o.deps.Reports.UpdateMovement(ctx, r, report.FromMovement(movement)); err != nil {
		return models.Movement{}, recordError(span, fmt.Errorf("saving movement: %w", err))
	}

	span.SetAttributes(attribute.String("severity", movement.Severity.String()))
	o.metrics.ObserveRun(o.strategy.String(), movement.Severity.String(), time.Since(start))
	o.logger.InfoContext(ctx, "movement reconciled",
		"screening_id", req.ScreeningID.String(),
		"imo", req.IMO.String(),
		"strategy", o.strategy.String(),
		"severity", movement.Severity.String(),
		"visits", len(movement.Visits),
		"port_calls", len(movement.PortCalls),
	)
	return movement, nil
}

// Reconcile computes the movement for req without persisting it.
func (o *Orchestrator) Reconcile(ctx context.Context, req Request) (models.Movement, error) {
	now := requestcontext.Now(ctx)
	cutoff := now.Add(-o.settings.Lookback)
	query := ports.MovementQuery{
		ScreeningID: req.ScreeningID,
		IMO:         req.IMO,
		VesselID:    req.VesselID,
		Since:       cutoff,
	}
	movement := models.Movement{Strategy: o.strategy.String(), ComputedAt: now}

	if o.strategy.warmsAggregator() {
		o.deps.Warmup.Enqueue(ctx, query)
	}

	if o.strategy.callsAggregator() {
		aggregated, err := o.aggregated(ctx, query)
		switch {
		case err != nil:
			category := providers.GetCategory(err)
			o.metrics.IncrementAggregatorFailure(string(category))
			o.logger.WarnContext(ctx, "external aggregator unavailable, degrading to local pipeline",
				"screening_id", req.ScreeningID.String(),
				"imo", req.IMO.String(),
				"error", err,
			)
			movement.Warnings = append(movement.Warnings,
				fmt.Sprintf("external aggregator unavailable (%s); used local pipeline", category))
		case o.strategy.usesAggregatorResult():
			movement.Visits = aggregated.Visits
			movement.PortCalls = aggregated.PortCalls
			movement.Severity = models.AggregateSeverity(movement.Visits, movement.PortCalls)
			return movement, nil
		}
	}

	visitList, outliers, err := o.localVisits(ctx, req.VesselID, cutoff)
	if err != nil {
		return models.Movement{}, err
	}
	events, err := o.localPortCalls(ctx, req.IMO, cutoff)
	if err != nil {
		return models.Movement{}, err
	}

	movement.Visits = visitList
	movement.PortCalls = events
	movement.Outliers = outliers
	movement.Severity = models.AggregateSeverity(visitList, events)
	return movement, nil
}

func (o *Orchestrator) aggregated(ctx context.Context, q ports.MovementQuery) (ports.AggregatedMovement, error) {
	ctx, span := o.tracer.Start(ctx, "movement.aggregator")
	defer span.End()
	start := time.Now()
	out, err := o.deps.Aggregator.Movements(ctx, q)
	o.metrics.ObserveSource(providers.ProviderAggregator, time.Since(start))
	if err != nil {
		return ports.AggregatedMovement{}, recordError(span, err)
	}
	return out, nil
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
