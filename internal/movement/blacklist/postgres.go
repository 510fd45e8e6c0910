package blacklist

import (
	"context"
	"database/sql"
	"fmt"

	"seawatch/internal/movement/models"
	id "seawatch/pkg/domain"
)

// PostgresStore reads the blacklist_entries reference table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed blacklist.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Severity(ctx context.Context, portName, countryName string) (models.BlacklistHit, bool, error) {
	if portName == "" && countryName == "" {
		return models.BlacklistHit{}, false, nil
	}
	query := `
		SELECT port_name IS NOT NULL AS by_port, severity, category
		FROM blacklist_entries
		WHERE ($1 <> '' AND lower(port_name) = lower($1))
		   OR ($2 <> '' AND lower(country_name) = lower($2))
		ORDER BY by_port DESC
	`
	rows, err := s.db.QueryContext(ctx, query, portName, countryName)
	if err != nil {
		return models.BlacklistHit{}, false, fmt.Errorf("blacklist lookup: %w", err)
	}
	defer rows.Close()

	var hits []models.BlacklistHit
	for rows.Next() {
		var (
			byPort   bool
			severity string
			category sql.NullString
		)
		if err := rows.Scan(&byPort, &severity, &category); err != nil {
			return models.BlacklistHit{}, false, fmt.Errorf("scan blacklist entry: %w", err)
		}
		level, err := id.ParseSeverity(severity)
		if err != nil {
			return models.BlacklistHit{}, false, fmt.Errorf("blacklist entry severity %q: %w", severity, err)
		}
		hits = append(hits, models.BlacklistHit{Severity: level, Category: category.String})
	}
	if err := rows.Err(); err != nil {
		return models.BlacklistHit{}, false, fmt.Errorf("iterate blacklist entries: %w", err)
	}
	hit, ok := mostSevere(hits)
	return hit, ok, nil
}

// Put inserts or replaces an entry. Screening runs never call this; it is
// used to seed reference data.
func (s *PostgresStore) Put(ctx context.Context, e models.BlacklistEntry) error {
	query := `
		INSERT INTO blacklist_entries (port_name, country_name, severity, category)
		VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4)
		ON CONFLICT ((lower(coalesce(port_name, ''))), (lower(coalesce(country_name, '')))) DO UPDATE SET
			severity = EXCLUDED.severity,
			category = EXCLUDED.category
	`
	_, err := s.db.ExecContext(ctx, query, e.PortName, e.CountryName, e.Severity.String(), e.Category)
	if err != nil {
		return fmt.Errorf("put blacklist entry: %w", err)
	}
	return nil
}
