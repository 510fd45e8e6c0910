package portcalls

import (
	"context"
	"fmt"
	"slices"
	"time"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	"seawatch/internal/movement/providers"
	id "seawatch/pkg/domain"
)

// Fetch lists port calls newest first, retrying once without the order hint
// when the source rejects it, and returns them in ascending entered order.
// Events with no entered time sort first.
func Fetch(ctx context.Context, source ports.PortCallSource, imo id.IMO, limit int) ([]models.PortCallEvent, error) {
	events, err := source.List(ctx, imo, limit, ports.OrderNewestFirst)
	if err != nil && providers.GetCategory(err) == providers.ErrorContractMismatch {
		events, err = source.List(ctx, imo, limit, ports.OrderNone)
	}
	if err != nil {
		return nil, fmt.Errorf("listing port calls for %s: %w", imo, err)
	}
	return SortAscending(events), nil
}

// SortAscending returns a copy of events sorted by entered time.
func SortAscending(events []models.PortCallEvent) []models.PortCallEvent {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b models.PortCallEvent) int {
		return enteredAt(a).Compare(enteredAt(b))
	})
	return out
}

// Since keeps events entered at or after cutoff. Events without an entered
// time are kept only if they departed at or after cutoff.
func Since(events []models.PortCallEvent, cutoff time.Time) []models.PortCallEvent {
	out := make([]models.PortCallEvent, 0, len(events))
	for _, e := range events {
		switch {
		case e.Entered != nil && !e.Entered.Before(cutoff):
			out = append(out, e)
		case e.Entered == nil && e.Departed != nil && !e.Departed.Before(cutoff):
			out = append(out, e)
		}
	}
	return out
}

func enteredAt(e models.PortCallEvent) time.Time {
	if e.Entered == nil {
		return time.Time{}
	}
	return *e.Entered
}

