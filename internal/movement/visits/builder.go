// Package visits folds a chronological, port-resolved track into port visits.
package visits

import (
	"context"
	"fmt"
	"slices"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	id "seawatch/pkg/domain"
)

// State is the accumulator of the fold. Step never mutates the State it is
// given; the Visits slice of a returned State is never shared with its input.
type State struct {
	Visits []models.Visit
	// atPort is true while the last visit is the vessel's current one. A
	// current visit may already carry a departure reported by the feed.
	atPort bool
}

// Current returns the visit the vessel is at, if any.
func (s State) Current() (models.Visit, bool) {
	if !s.atPort || len(s.Visits) == 0 {
		return models.Visit{}, false
	}
	return s.Visits[len(s.Visits)-1], true
}

// Builder opens visits with their blacklist severity.
type Builder struct {
	blacklist ports.BlacklistLookup
}

// NewBuilder creates a Builder.
func NewBuilder(blacklist ports.BlacklistLookup) *Builder {
	return &Builder{blacklist: blacklist}
}

// Build folds positions, which must be in ascending time order, into visits.
// The result holds closed visits and at most one trailing open visit.
func (b *Builder) Build(ctx context.Context, positions []models.ResolvedPosition) ([]models.Visit, error) {
	var (
		state State
		err   error
	)
	for _, rp := range positions {
		state, err = b.Step(ctx, state, rp)
		if err != nil {
			return nil, err
		}
	}
	return state.Visits, nil
}

// Step applies one resolved position to s:
//   - no fix: unchanged
//   - not at a port, position at a port: open a visit
//   - at a port, same port with a departure time: record the departure
//   - at a port, different port: close the current visit and open a new one
//   - at a port, open water: close the current visit
func (b *Builder) Step(ctx context.Context, s State, rp models.ResolvedPosition) (State, error) {
	if !rp.Position.HasFix() {
		return s, nil
	}
	current, atPort := s.Current()

	switch {
	case !atPort && rp.Port.Matched():
		return b.open(ctx, s, rp)

	case atPort && rp.Port.SamePort(current.Port):
		if rp.Position.Departed == nil {
			return s, nil
		}
		current.Departed = models.Time(*rp.Position.Departed)
		return s.replaceCurrent(current), nil

	case atPort && rp.Port.Matched():
		return b.open(ctx, s.closeCurrent(current, rp), rp)

	case atPort:
		return s.closeCurrent(current, rp), nil
	}
	return s, nil
}

func (b *Builder) open(ctx context.Context, s State, rp models.ResolvedPosition) (State, error) {
	severity := id.SeverityOK
	category := ""
	hit, ok, err := b.blacklist.Severity(ctx, rp.Port.Name, rp.Port.Country)
	if err != nil {
		return s, fmt.Errorf("blacklist lookup for port %q: %w", rp.Port.Name, err)
	}
	if ok {
		severity, category = hit.Severity, hit.Category
	}

	visit := models.Visit{
		Port:     rp.Port,
		Entered:  models.Time(rp.Position.Timestamp),
		Severity: severity,
		Category: category,
	}
	if rp.Position.Departed != nil {
		visit.Departed = models.Time(*rp.Position.Departed)
	}
	return State{Visits: append(slices.Clip(s.Visits), visit), atPort: true}, nil
}

func (s State) closeCurrent(current models.Visit, rp models.ResolvedPosition) State {
	if current.Departed == nil {
		current.Departed = models.Time(rp.Position.Timestamp)
	}
	next := s.replaceCurrent(current)
	next.atPort = false
	return next
}

func (s State) replaceCurrent(v models.Visit) State {
	visits := slices.Clone(s.Visits)
	visits[len(visits)-1] = v
	return State{Visits: visits, atPort: s.atPort}
}
