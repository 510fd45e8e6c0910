// Package outlier classifies and strips physically impossible positions from
// a vessel track.
//
// A position is an outlier when its coordinates are out of range, or when
// reaching it from the last accepted position would need a speed at or above
// MaxSpeedKnots. Because every comparison is made against the last accepted
// position, one corrupt leading fix would poison the whole track; Mark first
// trims such a leading fix before flagging the rest.
package outlier

import (
	"math"

	"seawatch/internal/movement/models"
	"seawatch/pkg/geodesy"
)

const (
	// MaxSpeedKnots is the implied or reported speed at which a fix is
	// considered impossible.
	MaxSpeedKnots = 100.0

	trimWindow    = 5
	trimThreshold = 3
	maxTrimRounds = 5
)

// ValidCoordinates reports whether p has a fix inside [-90,90] x [-180,180].
// Vendor "no fix" sentinels (around 971) fall outside the range.
func ValidCoordinates(p models.Position) bool {
	if !p.HasFix() {
		return false
	}
	lat, lon := p.LatLon()
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// IsOutlier reports whether p is geometrically invalid, or physically
// implausible relative to prev. prev may be nil.
func IsOutlier(p models.Position, prev *models.Position) bool {
	if !ValidCoordinates(p) {
		return true
	}
	if prev == nil {
		return false
	}
	if p.Speed != nil && *p.Speed >= MaxSpeedKnots {
		return true
	}
	return ImpliedSpeedKnots(*prev, p) >= MaxSpeedKnots
}

// ImpliedSpeedKnots is the great-circle distance between a and b divided by
// the elapsed time. Coincident timestamps give +Inf unless the points match.
func ImpliedSpeedKnots(a, b models.Position) float64 {
	lat1, lon1 := a.LatLon()
	lat2, lon2 := b.LatLon()
	distance := geodesy.DistanceNM(lat1, lon1, lat2, lon2)

	hours := math.Abs(b.Timestamp.Sub(a.Timestamp).Hours())
	if hours == 0 {
		if distance == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return distance / hours
}

// DropInvalid removes positions without a usable fix, including vendor
// "no fix" sentinels, and returns how many were removed. Order is kept.
func DropInvalid(positions []models.Position) ([]models.Position, int) {
	out := make([]models.Position, 0, len(positions))
	for _, p := range positions {
		if ValidCoordinates(p) {
			out = append(out, p)
		}
	}
	return out, len(positions) - len(out)
}
