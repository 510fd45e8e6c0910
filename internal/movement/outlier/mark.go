package outlier

import "seawatch/internal/movement/models"

// Marked is the result of Mark. Track is newest-first like the input, minus
// any leading fixes dropped by the trim pass; Flags[i] reports whether
// Track[i] is an outlier.
type Marked struct {
	Track   []models.Position
	Flags   []bool
	Count   int
	Trimmed int
}

// Accepted returns the non-outlier positions, newest first.
func (m Marked) Accepted() []models.Position {
	out := make([]models.Position, 0, len(m.Track)-m.Count)
	for i, p := range m.Track {
		if !m.Flags[i] {
			out = append(out, p)
		}
	}
	return out
}

// scan is the rolling state of a marking walk. Steps return a new value.
type scan struct {
	baseline *models.Position
	flagged  int
}

func (s scan) step(p models.Position) (scan, bool) {
	if IsOutlier(p, s.baseline) {
		s.flagged++
		return s, true
	}
	accepted := p
	s.baseline = &accepted
	return s, false
}

// Mark flags outliers in a newest-first track. seed is the last accepted
// position from before this track (nil if none).
//
// The trim pass looks at the oldest five positions; when at least three of
// them are outliers against a rolling baseline the single oldest position is
// dropped and the pass repeats, at most five times. The marking pass then
// walks oldest to newest, advancing the baseline only on accepted fixes.
func Mark(newestFirst []models.Position, seed *models.Position) Marked {
	track := newestFirst
	trimmed := 0
	for round := 0; round < maxTrimRounds && len(track) > 1; round++ {
		if !leadingFixCorrupt(track, seed) {
			break
		}
		track = track[:len(track)-1]
		trimmed++
	}

	flags := make([]bool, len(track))
	state := scan{baseline: seed}
	for i := len(track) - 1; i >= 0; i-- {
		var flagged bool
		state, flagged = state.step(track[i])
		flags[i] = flagged
	}

	return Marked{
		Track:   track,
		Flags:   flags,
		Count:   state.flagged,
		Trimmed: trimmed,
	}
}

func leadingFixCorrupt(newestFirst []models.Position, seed *models.Position) bool {
	window := trimWindow
	if len(newestFirst) < window {
		window = len(newestFirst)
	}
	state := scan{baseline: seed}
	for i := len(newestFirst) - 1; i >= len(newestFirst)-window; i-- {
		state, _ = state.step(newestFirst[i])
	}
	return state.flagged >= trimThreshold
}
