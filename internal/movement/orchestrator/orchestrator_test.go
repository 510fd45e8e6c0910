package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"seawatch/internal/movement/blacklist"
	"seawatch/internal/movement/geo"
	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	"seawatch/internal/movement/ports/mocks"
	"seawatch/internal/movement/providers"
	"seawatch/internal/movement/report/store"
	"seawatch/internal/movement/severity"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
	"seawatch/pkg/requestcontext"
)

const (
	imo      id.IMO      = "9074729"
	vesselID id.VesselID = "244123000"
)

var (
	now    = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	base   = now.Add(-10 * 24 * time.Hour)
	aden   = models.PortMatch{Code: "YEADE", Name: "Aden", Country: "Yemen", Latitude: models.Float(12.80), Longitude: models.Float(44.95)}
	novo   = models.PortMatch{Code: "RUNVS", Name: "Novorossiysk", Country: "Russia", Latitude: models.Float(44.72), Longitude: models.Float(37.78)}
	failed = providers.NewProviderError(providers.ErrorProviderOutage, providers.ProviderAggregator, "down", nil)
)

type OrchestratorSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	positions  *mocks.MockPositionSource
	portCalls  *mocks.MockPortCallSource
	aggregator *mocks.MockAggregator
	warmup     *mocks.MockWarmupQueue
	reports    *store.InMemoryStore
	deps       Dependencies
	req        Request
	ctx        context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupSubTest() {
	s.ctrl = gomock.NewController(s.T())
	s.positions = mocks.NewMockPositionSource(s.ctrl)
	s.portCalls = mocks.NewMockPortCallSource(s.ctrl)
	s.aggregator = mocks.NewMockAggregator(s.ctrl)
	s.warmup = mocks.NewMockWarmupQueue(s.ctrl)
	s.reports = store.NewInMemory()

	resolver := geo.NewMemoryResolver([]models.PortMatch{aden, novo}, geo.DefaultRadiusKm)
	lookup := blacklist.NewMemoryStore(
		models.BlacklistEntry{CountryName: "Yemen", Severity: id.SeverityWarning, Category: "conflict zone"},
		models.BlacklistEntry{CountryName: "Russia", Severity: id.SeverityCritical, Category: "sanctioned"},
	)
	s.deps = Dependencies{
		Positions:  s.positions,
		PortCalls:  s.portCalls,
		Ports:      resolver,
		Blacklist:  lookup,
		Severity:   severity.NewResolver(resolver, lookup),
		Reports:    s.reports,
		Aggregator: s.aggregator,
		Warmup:     s.warmup,
	}
	s.req = Request{ScreeningID: id.NewScreeningID(), ShipID: id.NewShipID(), IMO: imo, VesselID: vesselID}
	s.ctx = requestcontext.WithTime(context.Background(), now)
}

func (s *OrchestratorSuite) newOrchestrator(strategy Strategy) *Orchestrator {
	o, err := New(s.deps, Settings{
		Lookback:          365 * 24 * time.Hour,
		SampleInterval:    0,
		StoppedSpeedKnots: -1,
		PageSize:          100,
		PortCallLimit:     500,
	}, WithStrategy(strategy))
	s.Require().NoError(err)
	return o
}

// expectTrack serves Aden, Aden, open water, Aden (newest first on the wire).
func (s *OrchestratorSuite) expectTrack() {
	at := func(h int, lat, lon float64) models.Position {
		return models.NewPosition(vesselID, base.Add(time.Duration(h)*time.Hour), lat, lon)
	}
	s.positions.EXPECT().Page(gomock.Any(), vesselID, "", 100).Return(ports.PositionPage{
		Positions: []models.Position{
			at(30, 12.80, 44.95),
			at(10, 13.50, 46.00),
			at(2, 12.801, 44.951),
			at(0, 12.80, 44.95),
		},
	}, nil)
}

// expectPortCalls serves one recent call at Novorossiysk and one outside the
// lookback window.
func (s *OrchestratorSuite) expectPortCalls() {
	s.portCalls.EXPECT().List(gomock.Any(), imo, 500, ports.OrderNewestFirst).Return([]models.PortCallEvent{
		{Entered: models.Time(base.Add(40 * time.Hour)), PortName: "Novorossiysk", CountryName: "Russian Federation", LastPortOfCall: "Aden"},
		{Entered: models.Time(now.Add(-400 * 24 * time.Hour)), PortName: "Aden", CountryName: "Yemen"},
	}, nil)
}

// =============================================================================
// Local pipeline
// =============================================================================

func (s *OrchestratorSuite) TestLocalPipeline() {
	s.Run("visits WARNING and port calls CRITICAL aggregate to CRITICAL", func() {
		s.expectTrack()
		s.expectPortCalls()

		movement, err := s.newOrchestrator(StrategyLocalOnly).Run(s.ctx, s.req)

		s.Require().NoError(err)
		s.Equal(id.SeverityCritical, movement.Severity)
		s.Require().Len(movement.Visits, 2)
		s.Equal(id.SeverityWarning, models.VisitsSeverity(movement.Visits))
		s.Equal(base.Add(10*time.Hour), *movement.Visits[0].Departed)
		s.True(movement.Visits[1].IsOpen())
		s.Require().Len(movement.PortCalls, 1)
		s.Equal(id.SeverityCritical, movement.PortCalls[0].PortSeverity)
		s.Equal(id.SeverityWarning, movement.PortCalls[0].LastPortOfCallSeverity)

		persisted, err := s.reports.Get(s.ctx, s.req.ScreeningID)
		s.Require().NoError(err)
		s.Len(persisted.PortVisits, 2)
		s.Len(persisted.PortCallEvents, 1)
		s.Equal(id.SeverityCritical, persisted.Severity)
		s.Equal("local_only", persisted.Strategy)
		s.Equal("2024-05-22T10:00:00Z", *persisted.PortVisits[0].Departed)
		s.Equal("12.8", persisted.PortVisits[0].PortLatitude)
	})

	s.Run("no vessel id means no track and no visits", func() {
		s.expectPortCalls()
		s.req.VesselID = ""

		movement, err := s.newOrchestrator(StrategyLocalOnly).Run(s.ctx, s.req)

		s.Require().NoError(err)
		s.Empty(movement.Visits)
		s.Equal(id.SeverityCritical, movement.Severity)
	})

	s.Run("position feed failure propagates and nothing is persisted", func() {
		s.positions.EXPECT().Page(gomock.Any(), vesselID, "", 100).
			Return(ports.PositionPage{}, providers.NewProviderError(providers.ErrorProviderOutage, providers.ProviderPositions, "down", nil))

		_, err := s.newOrchestrator(StrategyLocalOnly).Run(s.ctx, s.req)

		s.Require().Error(err)
		_, getErr := s.reports.Get(s.ctx, s.req.ScreeningID)
		s.ErrorIs(getErr, sentinel.ErrNotFound)
	})

	s.Run("port call feed failure propagates", func() {
		s.expectTrack()
		s.portCalls.EXPECT().List(gomock.Any(), imo, 500, ports.OrderNewestFirst).
			Return(nil, providers.NewProviderError(providers.ErrorTimeout, providers.ProviderPortCalls, "slow", nil))

		_, err := s.newOrchestrator(StrategyLocalOnly).Run(s.ctx, s.req)

		s.Equal(providers.ErrorTimeout, providers.GetCategory(err))
	})

	s.Run("empty sources give OK", func() {
		s.positions.EXPECT().Page(gomock.Any(), vesselID, "", 100).Return(ports.PositionPage{}, sentinel.ErrNoMoreData)
		s.portCalls.EXPECT().List(gomock.Any(), imo, 500, ports.OrderNewestFirst).Return(nil, nil)

		movement, err := s.newOrchestrator(StrategyLocalOnly).Run(s.ctx, s.req)

		s.Require().NoError(err)
		s.Equal(id.SeverityOK, movement.Severity)
		s.Empty(movement.Visits)
		s.Empty(movement.PortCalls)
	})

	s.Run("no-fix positions are rejected before cleaning and out of order pages are sorted", func() {
		at := func(h int, lat, lon float64) models.Position {
			return models.NewPosition(vesselID, base.Add(time.Duration(h)*time.Hour), lat, lon)
		}
		noFix := models.Position{VesselID: vesselID, Timestamp: base.Add(time.Hour), Source: models.SourceTransponder}
		s.positions.EXPECT().Page(gomock.Any(), vesselID, "", 100).Return(ports.PositionPage{
			Positions: []models.Position{
				at(10, 13.50, 46.00),
				noFix,
				at(0, 12.80, 44.95),
				at(3, 971.1, 971.1),
				at(30, 12.80, 44.95),
				at(4, 971.1, 971.1),
				at(2, 12.801, 44.951),
			},
		}, nil)
		s.expectPortCalls()

		movement, err := s.newOrchestrator(StrategyLocalOnly).Run(s.ctx, s.req)

		s.Require().NoError(err)
		s.Equal(3, movement.Outliers)
		s.Require().Len(movement.Visits, 2)
		s.Equal(base, *movement.Visits[0].Entered)
		s.Equal(base.Add(10*time.Hour), *movement.Visits[0].Departed)
		s.True(movement.Visits[1].IsOpen())
	})
}

// =============================================================================
// Aggregator strategies
// =============================================================================

func (s *OrchestratorSuite) TestAggregatorStrategies() {
	aggregated := ports.AggregatedMovement{
		Visits: []models.Visit{{Port: aden, Entered: models.Time(base), Severity: id.SeverityWarning}},
	}

	s.Run("external sync uses the aggregator and skips the local pipeline", func() {
		s.aggregator.EXPECT().Movements(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q ports.MovementQuery) (ports.AggregatedMovement, error) {
				s.Equal(imo, q.IMO)
				s.Equal(now.Add(-365*24*time.Hour), q.Since)
				return aggregated, nil
			})

		movement, err := s.newOrchestrator(StrategyExternalSync).Run(s.ctx, s.req)

		s.Require().NoError(err)
		s.Equal(id.SeverityWarning, movement.Severity)
		s.Equal(aggregated.Visits, movement.Visits)
		s.Empty(movement.Warnings)
	})

	s.Run("aggregator failure degrades to the local pipeline with a warning", func() {
		s.aggregator.EXPECT().Movements(gomock.Any(), gomock.Any()).Return(ports.AggregatedMovement{}, failed)
		s.expectTrack()
		s.expectPortCalls()

		movement, err := s.newOrchestrator(StrategyExternalSync).Run(s.ctx, s.req)

		s.Require().NoError(err)
		s.Equal(id.SeverityCritical, movement.Severity)
		s.Len(movement.Visits, 2)
		s.Require().Len(movement.Warnings, 1)
		s.Contains(movement.Warnings[0], "external aggregator unavailable")

		persisted, err := s.reports.Get(s.ctx, s.req.ScreeningID)
		s.Require().NoError(err)
		s.Equal(movement.Warnings, persisted.Warnings)
	})

	s.Run("shadow calls the aggregator but keeps the local result", func() {
		s.aggregator.EXPECT().Movements(gomock.Any(), gomock.Any()).Return(aggregated, nil)
		s.expectTrack()
		s.expectPortCalls()

		movement, err := s.newOrchestrator(StrategyExternalSyncShadow).Run(s.ctx, s.req)

		s.Require().NoError(err)
		s.Equal(id.SeverityCritical, movement.Severity)
		s.Len(movement.PortCalls, 1)
	})

	s.Run("async warm-up enqueues and runs locally", func() {
		s.warmup.EXPECT().Enqueue(gomock.Any(), ports.MovementQuery{
			ScreeningID: s.req.ScreeningID,
			IMO:         imo,
			VesselID:    vesselID,
			Since:       now.Add(-365 * 24 * time.Hour),
		})
		s.expectTrack()
		s.expectPortCalls()

		movement, err := s.newOrchestrator(StrategyExternalAsyncWarmup).Run(s.ctx, s.req)

		s.Require().NoError(err)
		s.Equal(StrategyExternalAsyncWarmup.String(), movement.Strategy)
		s.Equal(id.SeverityCritical, movement.Severity)
	})
}

func (s *OrchestratorSuite) TestNewValidatesDependencies() {
	s.Run("aggregator strategies need an aggregator", func() {
		s.deps.Aggregator = nil
		_, err := New(s.deps, Settings{Lookback: time.Hour}, WithStrategy(StrategyExternalSync))
		s.Error(err)
	})

	s.Run("warm-up strategy needs a queue", func() {
		s.deps.Warmup = nil
		_, err := New(s.deps, Settings{Lookback: time.Hour}, WithStrategy(StrategyExternalAsyncWarmup))
		s.Error(err)
	})

	s.Run("local only needs neither", func() {
		s.deps.Aggregator, s.deps.Warmup = nil, nil
		o, err := New(s.deps, Settings{Lookback: time.Hour})
		s.Require().NoError(err)
		s.Equal(StrategyLocalOnly, o.Strategy())
	})
}

func TestResolveStrategy(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  Strategy
	}{
		{"aggregator disabled", Flags{}, StrategyLocalOnly},
		{"disabled wins over other flags", Flags{AggregatorAsync: true, ForceLocal: true}, StrategyLocalOnly},
		{"sync", Flags{UseAggregator: true}, StrategyExternalSync},
		{"async", Flags{UseAggregator: true, AggregatorAsync: true}, StrategyExternalAsyncWarmup},
		{"async wins over force local", Flags{UseAggregator: true, AggregatorAsync: true, ForceLocal: true}, StrategyExternalAsyncWarmup},
		{"shadow", Flags{UseAggregator: true, ForceLocal: true}, StrategyExternalSyncShadow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStrategy(tt.flags))
		})
	}
}
