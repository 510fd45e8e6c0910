package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seawatch/internal/screening/models"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
)

// PostgresStore persists ship checks in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed ship check store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// MarkPending resets the check to PENDING with an unknown severity.
func (s *PostgresStore) MarkPending(ctx context.Context, screeningID id.ScreeningID, shipID id.ShipID, check models.CheckName, now time.Time) error {
	query := `
		INSERT INTO ship_checks (screening_id, check_name, ship_id, status, severity, has_report, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		ON CONFLICT (screening_id, check_name) DO UPDATE SET
			ship_id = EXCLUDED.ship_id,
			status = EXCLUDED.status,
			severity = EXCLUDED.severity,
			has_report = FALSE,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		screeningID.String(),
		string(check),
		shipID.String(),
		string(models.CheckStatusPending),
		id.SeverityUnknown.String(),
		now,
	)
	if err != nil {
		return fmt.Errorf("mark ship check pending: %w", err)
	}
	return nil
}

// MarkDone records the outcome of a finished run.
func (s *PostgresStore) MarkDone(ctx context.Context, screeningID id.ScreeningID, check models.CheckName, outcome models.Outcome, now time.Time) error {
	query := `
		UPDATE ship_checks
		SET status = $3, severity = $4, has_report = $5, updated_at = $6
		WHERE screening_id = $1 AND check_name = $2
	`
	res, err := s.db.ExecContext(ctx, query,
		screeningID.String(),
		string(check),
		string(models.CheckStatusDone),
		outcome.Severity.String(),
		outcome.HasReport,
		now,
	)
	if err != nil {
		return fmt.Errorf("mark ship check done: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark ship check done rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Get returns the check or sentinel.ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, screeningID id.ScreeningID, check models.CheckName) (*models.ShipCheck, error) {
	query := `
		SELECT screening_id, check_name, ship_id, status, severity, has_report, updated_at
		FROM ship_checks
		WHERE screening_id = $1 AND check_name = $2
	`
	var (
		c                   models.ShipCheck
		screening, ship     uuid.UUID
		name, status, level string
	)
	err := s.db.QueryRowContext(ctx, query, screeningID.String(), string(check)).
		Scan(&screening, &name, &ship, &status, &level, &c.HasReport, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get ship check: %w", err)
	}
	severity, err := id.ParseSeverity(level)
	if err != nil {
		return nil, fmt.Errorf("decode ship check severity: %w", err)
	}
	c.ScreeningID = id.ScreeningID(screening)
	c.ShipID = id.ShipID(ship)
	c.Check = models.CheckName(name)
	c.Status = models.CheckStatus(status)
	c.Severity = severity
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
