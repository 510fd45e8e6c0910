//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// Package ports defines the collaborator contracts of the movement module.
// The orchestrator depends only on these interfaces; HTTP clients, postgres
// stores and caches live in sibling packages and are injected at startup.
package ports

import (
	"context"
	"time"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/report"
	id "seawatch/pkg/domain"
)

// PositionPage is one backward window of a transponder track, newest first.
// NextCursor points to an earlier window; empty means the feed has no cursor.
type PositionPage struct {
	Positions  []models.Position
	NextCursor string
}

// PositionSource pages raw transponder positions backwards in time.
// Returns sentinel.ErrNoMoreData when nothing exists before endCursor.
type PositionSource interface {
	Page(ctx context.Context, vesselID id.VesselID, endCursor string, pageSize int) (PositionPage, error)
}

// OrderHint asks the port-call feed for an ordering it may not support.
type OrderHint string

const (
	OrderNone        OrderHint = ""
	OrderNewestFirst OrderHint = "desc"
)

// PortCallSource lists shore-reported port calls for a vessel.
type PortCallSource interface {
	List(ctx context.Context, imo id.IMO, limit int, order OrderHint) ([]models.PortCallEvent, error)
}

// PortField names an identifier PortResolver.ByField can match on.
type PortField string

const (
	PortFieldIHSID PortField = "ihs_port_id"
	PortFieldName  PortField = "name"
	PortFieldCode  PortField = "code"
)

// PortResolver resolves coordinates or identifiers to ports. A miss is
// models.NoMatch with a nil error.
type PortResolver interface {
	Nearest(ctx context.Context, lat, lon float64) (models.PortMatch, error)
	ByField(ctx context.Context, field PortField, value string) (models.PortMatch, error)
	// NearestBatch returns one match per position, in input order.
	NearestBatch(ctx context.Context, positions []models.Position) ([]models.PortMatch, error)
}

// BlacklistLookup returns the risk attached to a port and/or country name.
// ok is false when neither name is listed.
type BlacklistLookup interface {
	Severity(ctx context.Context, portName, countryName string) (hit models.BlacklistHit, ok bool, err error)
}

// ReportStore persists the movement section of a screening report.
type ReportStore interface {
	GetOrCreate(ctx context.Context, screeningID id.ScreeningID, defaults report.Defaults) (*report.Report, error)
	UpdateMovement(ctx context.Context, r *report.Report, fields report.MovementFields) error
}

// MovementQuery identifies the vessel and window for an aggregator call.
type MovementQuery struct {
	ScreeningID id.ScreeningID
	IMO         id.IMO
	VesselID    id.VesselID
	Since       time.Time
}

// AggregatedMovement is the externally pre-aggregated view of a vessel.
type AggregatedMovement struct {
	Visits    []models.Visit
	PortCalls []models.PortCallEvent
}

// Aggregator is the optional external movement aggregation service.
type Aggregator interface {
	Movements(ctx context.Context, q MovementQuery) (AggregatedMovement, error)
}

// WarmupQueue hands a best-effort aggregator warm-up to a background worker.
// It returns nothing by construction: the result is never part of the run
// that enqueued it.
type WarmupQueue interface {
	Enqueue(ctx context.Context, q MovementQuery)
}
