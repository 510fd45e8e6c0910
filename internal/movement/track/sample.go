package track

import (
	"slices"
	"time"

	"seawatch/internal/movement/models"
)

// StoppedFilterDisabled turns DropUnderway into a no-op.
const StoppedFilterDisabled = -1

// Thin keeps a position only when at least interval has passed since the
// last kept one, scanning newest to oldest. The newest position is always
// kept. A non-positive interval returns the input unchanged.
func Thin(newestFirst []models.Position, interval time.Duration) []models.Position {
	if interval <= 0 || len(newestFirst) == 0 {
		return newestFirst
	}
	out := make([]models.Position, 0, len(newestFirst))
	out = append(out, newestFirst[0])
	last := newestFirst[0].Timestamp
	for _, p := range newestFirst[1:] {
		if last.Sub(p.Timestamp) >= interval {
			out = append(out, p)
			last = p.Timestamp
		}
	}
	return out
}

// DropUnderway drops positions whose reported speed is at or above
// stoppedKnots, keeping only fixes where the vessel looks stationary.
// Positions without a reported speed are kept. A negative threshold
// disables the filter.
func DropUnderway(positions []models.Position, stoppedKnots float64) []models.Position {
	if stoppedKnots < 0 {
		return positions
	}
	out := make([]models.Position, 0, len(positions))
	for _, p := range positions {
		if p.Speed != nil && *p.Speed >= stoppedKnots {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Chronological returns a copy of a newest-first track ordered oldest first.
// Fixes the feed delivered out of order are put back in timestamp order.
func Chronological(newestFirst []models.Position) []models.Position {
	out := slices.Clone(newestFirst)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.Position) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

// NewestFirst returns a copy of positions ordered newest first. Ties keep
// their feed order.
func NewestFirst(positions []models.Position) []models.Position {
	out := slices.Clone(positions)
	slices.SortStableFunc(out, func(a, b models.Position) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}
