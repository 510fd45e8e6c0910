package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"seawatch/internal/movement/report"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
)

// PostgresStore persists reports in movement_reports with the visit and
// port-call lists as JSONB.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed report store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reportColumns = `screening_id, ship_id, imo, port_visits, port_call_events, severity, strategy, warnings, created_at, updated_at`

// GetOrCreate returns the report for screeningID, inserting one seeded from
// defaults if none exists.
func (s *PostgresStore) GetOrCreate(ctx context.Context, screeningID id.ScreeningID, defaults report.Defaults) (*report.Report, error) {
	query := `
		INSERT INTO movement_reports (screening_id, ship_id, imo, severity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (screening_id) DO UPDATE SET
			screening_id = EXCLUDED.screening_id
		RETURNING ` + reportColumns
	r, err := scanReport(s.db.QueryRowContext(ctx, query,
		screeningID.String(),
		defaults.ShipID.String(),
		defaults.IMO.String(),
		id.SeverityUnknown.String(),
		defaults.Now,
	))
	if err != nil {
		return nil, fmt.Errorf("get or create movement report: %w", err)
	}
	return r, nil
}

// UpdateMovement writes fields to the stored report and to r.
func (s *PostgresStore) UpdateMovement(ctx context.Context, r *report.Report, fields report.MovementFields) error {
	visits, err := encodeList(fields.PortVisits)
	if err != nil {
		return fmt.Errorf("encode port visits: %w", err)
	}
	events, err := encodeList(fields.PortCallEvents)
	if err != nil {
		return fmt.Errorf("encode port call events: %w", err)
	}
	warnings, err := encodeList(fields.Warnings)
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}

	query := `
		UPDATE movement_reports
		SET port_visits = $2, port_call_events = $3, severity = $4, strategy = $5, warnings = $6, updated_at = $7
		WHERE screening_id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		r.ScreeningID.String(),
		visits,
		events,
		fields.Severity.String(),
		fields.Strategy,
		warnings,
		fields.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement report: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update movement report rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("movement report %s: %w", r.ScreeningID, sentinel.ErrNotFound)
	}
	fields.Apply(r)
	return nil
}

// Get returns the stored report or sentinel.ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, screeningID id.ScreeningID) (*report.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM movement_reports WHERE screening_id = $1`
	r, err := scanReport(s.db.QueryRowContext(ctx, query, screeningID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get movement report: %w", err)
	}
	return r, nil
}

func scanReport(row *sql.Row) (*report.Report, error) {
	var (
		r                        report.Report
		screeningID, shipID      uuid.UUID
		imo, severity            string
		visits, events, warnings []byte
	)
	if err := row.Scan(&screeningID, &shipID, &imo, &visits, &events, &severity, &r.Strategy, &warnings, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.ScreeningID = id.ScreeningID(screeningID)
	r.ShipID = id.ShipID(shipID)
	r.IMO = id.IMO(imo)
	parsed, err := id.ParseSeverity(severity)
	if err != nil {
		return nil, fmt.Errorf("decode severity: %w", err)
	}
	r.Severity = parsed
	if err := json.Unmarshal(visits, &r.PortVisits); err != nil {
		return nil, fmt.Errorf("decode port visits: %w", err)
	}
	if err := json.Unmarshal(events, &r.PortCallEvents); err != nil {
		return nil, fmt.Errorf("decode port call events: %w", err)
	}
	if err := json.Unmarshal(warnings, &r.Warnings); err != nil {
		return nil, fmt.Errorf("decode warnings: %w", err)
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return &r, nil
}

// encodeList marshals a slice as a JSON array; nil becomes [].
func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
