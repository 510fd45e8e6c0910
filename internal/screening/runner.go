package screening

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	movement "seawatch/internal/movement/models"
	"seawatch/internal/movement/orchestrator"
	"seawatch/internal/platform/config"
	"seawatch/internal/screening/lock"
	"seawatch/internal/screening/metrics"
	"seawatch/internal/screening/models"
	id "seawatch/pkg/domain"
	dErrors "seawatch/pkg/domain-errors"
	"seawatch/pkg/platform/sentinel"
	"seawatch/pkg/requestcontext"
)

// MovementRunner reconciles and persists one vessel's movement.
type MovementRunner interface {
	Run(ctx context.Context, req orchestrator.Request) (movement.Movement, error)
}

// CheckStore records ship check status.
type CheckStore interface {
	MarkPending(ctx context.Context, screeningID id.ScreeningID, shipID id.ShipID, check models.CheckName, now time.Time) error
	MarkDone(ctx context.Context, screeningID id.ScreeningID, check models.CheckName, outcome models.Outcome, now time.Time) error
}

// Locker grants at-most-once execution per key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (lock.Release, error)
}

// Limits bound a run. The run's context is cancelled at Soft; the runner
// stops waiting at Hard.
type Limits struct {
	Soft    time.Duration
	Hard    time.Duration
	LockTTL time.Duration
}

// LimitsFromConfig reads the runner section.
func LimitsFromConfig(cfg config.RunnerConfig) Limits {
	return Limits{Soft: cfg.SoftLimit, Hard: cfg.HardLimit, LockTTL: cfg.LockTTL}
}

// Runner executes screening jobs.
type Runner struct {
	movement MovementRunner
	checks   CheckStore
	locker   Locker
	limits   Limits
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner.
func NewRunner(mr MovementRunner, checks CheckStore, locker Locker, limits Limits, opts ...Option) *Runner {
	r := &Runner{
		movement: mr,
		checks:   checks,
		locker:   locker,
		limits:   limits,
		logger:   slog.New(slog.DiscardHandler),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type runResult struct {
	movement movement.Movement
	err      error
}

// Run executes job. A job already running elsewhere is skipped without
// error. Otherwise the check is marked PENDING, the movement run executes,
// and the check is marked DONE: with the aggregate severity on success, or
// with UNKNOWN severity and no report on failure or timeout. The run's error
// is returned for logging.
func (r *Runner) Run(ctx context.Context, job Job) error {
	req := job.Request
	check := string(job.Check)
	release, err := r.locker.Acquire(ctx, req.ScreeningID.String()+":"+check, r.limits.LockTTL)
	if errors.Is(err, sentinel.ErrAlreadyRunning) {
		r.metrics.IncrementOutcome(check, "skipped")
		r.logger.InfoContext(ctx, "check already running, skipping",
			"screening_id", req.ScreeningID.String(),
			"check", check,
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("acquiring run lock: %w", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			r.logger.WarnContext(ctx, "failed to release run lock", "screening_id", req.ScreeningID.String(), "error", err)
		}
	}()

	startedAt := r.now()
	ctx = requestcontext.WithScreening(ctx, req.ScreeningID, req.ShipID)
	ctx = requestcontext.WithRunID(ctx, uuid.NewString())
	ctx = requestcontext.WithTime(ctx, startedAt)

	if err := r.checks.MarkPending(ctx, req.ScreeningID, req.ShipID, job.Check, startedAt); err != nil {
		return fmt.Errorf("marking check pending: %w", err)
	}

	outcome, runErr := r.execute(ctx, job)
	if err := r.checks.MarkDone(context.WithoutCancel(ctx), req.ScreeningID, job.Check, outcome, r.now()); err != nil {
		return errors.Join(runErr, fmt.Errorf("marking check done: %w", err))
	}

	attrs := []any{
		"screening_id", req.ScreeningID.String(),
		"ship_id", req.ShipID.String(),
		"imo", req.IMO.String(),
		"run_id", requestcontext.RunID(ctx),
		"check", check,
		"severity", outcome.Severity.String(),
		"duration", r.now().Sub(startedAt),
	}
	switch {
	case runErr == nil:
		r.metrics.IncrementOutcome(check, "done")
		r.logger.InfoContext(ctx, "check done", attrs...)
	case dErrors.HasCode(runErr, dErrors.CodeTimeout):
		r.metrics.IncrementOutcome(check, "timeout")
		r.logger.ErrorContext(ctx, "check timed out", append(attrs, "error", runErr)...)
	default:
		r.metrics.IncrementOutcome(check, "failed")
		r.logger.ErrorContext(ctx, "check failed", append(attrs, "error", runErr)...)
	}
	return runErr
}

func (r *Runner) execute(ctx context.Context, job Job) (models.Outcome, error) {
	softCtx, cancel := context.WithTimeout(ctx, r.limits.Soft)
	defer cancel()

	done := make(chan runResult, 1)
	go func() {
		mv, err := r.movement.Run(softCtx, job.Request)
		done <- runResult{movement: mv, err: err}
	}()

	hard := time.NewTimer(r.limits.Hard)
	defer hard.Stop()

	select {
	case res := <-done:
		switch {
		case res.err == nil:
			return models.Outcome{Severity: res.movement.Severity, HasReport: true}, nil
		case errors.Is(softCtx.Err(), context.DeadlineExceeded):
			return models.FailedOutcome, dErrors.Wrap(res.err, dErrors.CodeTimeout, "soft time limit exceeded")
		default:
			return models.FailedOutcome, res.err
		}
	case <-hard.C:
		return models.FailedOutcome, dErrors.New(dErrors.CodeTimeout, "hard time limit exceeded")
	}
}
