package orchestrator

import "seawatch/internal/platform/config"

// Strategy is how one run sources its movement data. It is resolved once per
// orchestrator from configuration and never re-derived during a run.
type Strategy string

const (
	// StrategyLocalOnly runs only the local reconciliation pipeline.
	StrategyLocalOnly Strategy = "local_only"
	// StrategyExternalSync uses the aggregator's result directly and runs
	// the local pipeline only if the aggregator fails.
	StrategyExternalSync Strategy = "external_sync"
	// StrategyExternalAsyncWarmup enqueues an aggregator warm-up for future
	// runs and uses the local pipeline for this one.
	StrategyExternalAsyncWarmup Strategy = "external_async_warmup"
	// StrategyExternalSyncShadow calls the aggregator synchronously but uses
	// only the local pipeline's output.
	StrategyExternalSyncShadow Strategy = "external_sync_shadow"
)

// Flags are the raw switches Strategy is resolved from.
type Flags struct {
	UseAggregator   bool
	AggregatorAsync bool
	// ForceLocal keeps the synchronous aggregator call but discards its
	// result in favour of the local pipeline.
	ForceLocal bool
}

// FlagsFromConfig reads the flags from the aggregator section.
func FlagsFromConfig(cfg config.AggregatorConfig) Flags {
	return Flags{
		UseAggregator:   cfg.Enabled,
		AggregatorAsync: cfg.Async,
		ForceLocal:      cfg.ForceLocal,
	}
}

// ResolveStrategy maps flags onto a Strategy. Async wins over ForceLocal.
func ResolveStrategy(f Flags) Strategy {
	switch {
	case !f.UseAggregator:
		return StrategyLocalOnly
	case f.AggregatorAsync:
		return StrategyExternalAsyncWarmup
	case f.ForceLocal:
		return StrategyExternalSyncShadow
	default:
		return StrategyExternalSync
	}
}

// callsAggregator reports whether runs wait on the aggregator.
func (s Strategy) callsAggregator() bool {
	return s == StrategyExternalSync || s == StrategyExternalSyncShadow
}

// usesAggregatorResult reports whether a successful aggregator answer
// replaces the local pipeline.
func (s Strategy) usesAggregatorResult() bool {
	return s == StrategyExternalSync
}

// warmsAggregator reports whether runs enqueue a background warm-up.
func (s Strategy) warmsAggregator() bool {
	return s == StrategyExternalAsyncWarmup
}

func (s Strategy) String() string { return string(s) }
