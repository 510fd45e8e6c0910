//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"seawatch/internal/movement/report"
	"seawatch/internal/movement/report/store"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
	"seawatch/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "movement_reports"))
}

func (s *PostgresStoreSuite) TestGetOrCreateIsIdempotent() {
	ctx := context.Background()
	screeningID := id.NewScreeningID()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	defaults := report.Defaults{ShipID: id.NewShipID(), IMO: "9074729", Now: now}

	first, err := s.store.GetOrCreate(ctx, screeningID, defaults)
	s.Require().NoError(err)
	second, err := s.store.GetOrCreate(ctx, screeningID, report.Defaults{ShipID: id.NewShipID(), IMO: "9074729", Now: now.Add(time.Hour)})
	s.Require().NoError(err)

	s.Equal(defaults.ShipID, second.ShipID)
	s.Equal(first.CreatedAt, second.CreatedAt)
	s.Equal(id.SeverityUnknown, second.Severity)
	s.Empty(second.PortVisits)
}

func (s *PostgresStoreSuite) TestUpdateMovementRoundTrip() {
	ctx := context.Background()
	screeningID := id.NewScreeningID()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r, err := s.store.GetOrCreate(ctx, screeningID, report.Defaults{ShipID: id.NewShipID(), IMO: "9074729", Now: now})
	s.Require().NoError(err)

	entered := "2024-05-01T00:00:00Z"
	fields := report.MovementFields{
		PortVisits: []report.VisitRecord{{
			Entered: &entered, PortName: "Aden", PortLatitude: report.UnknownLatitude,
			PortLongitude: report.UnknownLongitude, Severity: id.SeverityWarning,
		}},
		PortCallEvents: []report.PortCallRecord{{PortName: "Novorossiysk", PortSeverity: id.SeverityCritical}},
		Severity:       id.SeverityCritical,
		Strategy:       "local_only",
		Warnings:       []string{"aggregator unavailable"},
		UpdatedAt:      now.Add(time.Minute),
	}
	s.Require().NoError(s.store.UpdateMovement(ctx, r, fields))

	got, err := s.store.Get(ctx, screeningID)
	s.Require().NoError(err)
	s.Equal(fields.PortVisits, got.PortVisits)
	s.Equal(fields.PortCallEvents, got.PortCallEvents)
	s.Equal(id.SeverityCritical, got.Severity)
	s.Equal(fields.Warnings, got.Warnings)
	s.True(got.UpdatedAt.Equal(now.Add(time.Minute)))
}

func (s *PostgresStoreSuite) TestUpdateUnknownReport() {
	err := s.store.UpdateMovement(context.Background(), &report.Report{ScreeningID: id.NewScreeningID()}, report.MovementFields{})
	s.ErrorIs(err, sentinel.ErrNotFound)
}
