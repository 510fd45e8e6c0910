package models

import (
	"time"

	id "seawatch/pkg/domain"
)

// Source tags where a position came from.
type Source string

const (
	SourceTransponder Source = "transponder"
	SourceShoreReport Source = "shore_report"
)

// Position is a single vessel fix. Latitude and Longitude are nil when the
// feed reported "no fix"; Speed and Heading are optional.
type Position struct {
	VesselID  id.VesselID
	Timestamp time.Time
	Latitude  *float64
	Longitude *float64
	Speed     *float64 // knots
	Heading   *float64 // degrees
	Source    Source

	// Departed is set by feeds that report an explicit departure time for
	// the port the vessel is at.
	Departed *time.Time
}

// HasFix reports whether both coordinates are present.
func (p Position) HasFix() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// LatLon returns the coordinates. Only meaningful when HasFix is true.
func (p Position) LatLon() (float64, float64) {
	if !p.HasFix() {
		return 0, 0
	}
	return *p.Latitude, *p.Longitude
}

// NewPosition builds a transponder position with a fix.
func NewPosition(vesselID id.VesselID, ts time.Time, lat, lon float64) Position {
	return Position{
		VesselID:  vesselID,
		Timestamp: ts.UTC(),
		Latitude:  &lat,
		Longitude: &lon,
		Source:    SourceTransponder,
	}
}

// WithSpeed returns a copy of p with the reported speed set.
func (p Position) WithSpeed(knots float64) Position {
	p.Speed = &knots
	return p
}

// Float returns a pointer to v; handy for optional fields.
func Float(v float64) *float64 {
	return &v
}

// Time returns a pointer to t in UTC.
func Time(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}
