package orchestrator

import (
	"context"
	"fmt"
	"time"

	"seawatch/internal/movement/clients/portcalls"
	"seawatch/internal/movement/models"
	"seawatch/internal/movement/outlier"
	"seawatch/internal/movement/providers"
	"seawatch/internal/movement/track"
	id "seawatch/pkg/domain"
)

const sourcePortResolver = "port_resolver"

// localVisits fetches the transponder track since cutoff, cleans it and
// folds it into visits. It returns the number of outliers rejected.
func (o *Orchestrator) localVisits(ctx context.Context, vesselID id.VesselID, cutoff time.Time) ([]models.Visit, int, error) {
	if vesselID == "" {
		return nil, 0, nil
	}
	ctx, span := o.tracer.Start(ctx, "movement.visits")
	defer span.End()

	start := time.Now()
	history, err := track.FetchHistory(ctx, o.deps.Positions, vesselID, cutoff, o.settings.PageSize)
	o.metrics.ObserveSource(providers.ProviderPositions, time.Since(start))
	if err != nil {
		return nil, 0, recordError(span, err)
	}

	history, invalid := outlier.DropInvalid(history)
	history = track.NewestFirst(history)
	history = track.Thin(history, o.settings.SampleInterval)
	history = track.DropUnderway(history, o.settings.StoppedSpeedKnots)
	marked := outlier.Mark(history, nil)
	rejected := invalid + marked.Count
	o.metrics.AddOutliers(rejected)
	o.logger.DebugContext(ctx, "track cleaned",
		"vessel_id", vesselID.String(),
		"positions", len(marked.Track),
		"no_fix", invalid,
		"outliers", marked.Count,
		"trimmed", marked.Trimmed,
	)

	chronological := track.Chronological(marked.Accepted())
	if len(chronological) == 0 {
		return nil, rejected, nil
	}

	start = time.Now()
	matches, err := o.deps.Ports.NearestBatch(ctx, chronological)
	o.metrics.ObserveSource(sourcePortResolver, time.Since(start))
	if err != nil {
		return nil, 0, recordError(span, fmt.Errorf("resolving ports: %w", err))
	}
	if len(matches) != len(chronological) {
		return nil, 0, recordError(span, fmt.Errorf("resolving ports: got %d matches for %d positions", len(matches), len(chronological)))
	}

	resolved := make([]models.ResolvedPosition, len(chronological))
	for i, p := range chronological {
		resolved[i] = models.ResolvedPosition{Position: p, Port: matches[i]}
	}
	built, err := o.visits.Build(ctx, resolved)
	if err != nil {
		return nil, 0, recordError(span, err)
	}
	return built, rejected, nil
}

// localPortCalls lists port calls since cutoff in ascending order and
// resolves the three severities of each.
func (o *Orchestrator) localPortCalls(ctx context.Context, imo id.IMO, cutoff time.Time) ([]models.PortCallEvent, error) {
	ctx, span := o.tracer.Start(ctx, "movement.port_calls")
	defer span.End()

	start := time.Now()
	events, err := portcalls.Fetch(ctx, o.deps.PortCalls, imo, o.settings.PortCallLimit)
	o.metrics.ObserveSource(providers.ProviderPortCalls, time.Since(start))
	if err != nil {
		return nil, recordError(span, err)
	}

	events = portcalls.Since(events, cutoff)
	out := make([]models.PortCallEvent, 0, len(events))
	for _, e := range events {
		resolved, err := o.deps.Severity.ResolveEvent(ctx, e)
		if err != nil {
			return nil, recordError(span, fmt.Errorf("resolving port call severity: %w", err))
		}
		out = append(out, resolved)
	}
	return out, nil
}
