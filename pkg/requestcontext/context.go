// Package requestcontext provides transport-independent context accessors for
// run-scoped values.
//
// Screening runs are started by the task consumer, not by HTTP requests, so the
// values here describe the run: which screening and ship it belongs to, a
// correlation id, and the run's reference time.
//
// Usage in services (read values):
//
//	screeningID := requestcontext.ScreeningID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in the runner (set values):
//
//	ctx = requestcontext.WithScreening(ctx, screeningID, shipID)
//	ctx = requestcontext.WithTime(ctx, startedAt)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "seawatch/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	screeningIDKey struct{}
	shipIDKey      struct{}
	runIDKey       struct{}
	runTimeKey     struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyScreeningID = screeningIDKey{}
	ContextKeyShipID      = shipIDKey{}
	ContextKeyRunID       = runIDKey{}
	ContextKeyRunTime     = runTimeKey{}
)

// -----------------------------------------------------------------------------
// Screening scope
// -----------------------------------------------------------------------------

// ScreeningID retrieves the screening ID from the context.
func ScreeningID(ctx context.Context) id.ScreeningID {
	if v, ok := ctx.Value(ContextKeyScreeningID).(id.ScreeningID); ok {
		return v
	}
	return id.ScreeningID{}
}

// ShipID retrieves the ship ID from the context.
func ShipID(ctx context.Context) id.ShipID {
	if v, ok := ctx.Value(ContextKeyShipID).(id.ShipID); ok {
		return v
	}
	return id.ShipID{}
}

// WithScreening injects the screening and ship IDs into the context.
func WithScreening(ctx context.Context, screeningID id.ScreeningID, shipID id.ShipID) context.Context {
	ctx = context.WithValue(ctx, ContextKeyScreeningID, screeningID)
	return context.WithValue(ctx, ContextKeyShipID, shipID)
}

// -----------------------------------------------------------------------------
// Run metadata
// -----------------------------------------------------------------------------

// RunID retrieves the run correlation ID from the context.
func RunID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRunID).(string); ok {
		return v
	}
	return ""
}

// WithRunID injects a run correlation ID into the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// -----------------------------------------------------------------------------
// Run time
// -----------------------------------------------------------------------------

// Now retrieves the run-scoped time from context.
// Falls back to time.Now().UTC() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRunTime).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

// WithTime injects a specific time into a context.
// Useful for:
//   - Service unit tests that need deterministic lookback windows
//   - Runs that need one consistent "now" across all sources
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRunTime, t.UTC())
}
