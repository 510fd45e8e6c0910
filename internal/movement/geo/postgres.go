package geo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	dErrors "seawatch/pkg/domain-errors"
	"seawatch/pkg/geodesy"
)

// batchChunk bounds the array size sent in one NearestBatch round trip.
const batchChunk = 500

// haversineKm is the distance in km between ports(latitude, longitude) and
// the point given by the two placeholders.
const haversineKm = `2 * 6371.0088 * asin(sqrt(
	power(sin(radians(latitude - %[1]s) / 2), 2) +
	cos(radians(%[1]s)) * cos(radians(latitude)) *
	power(sin(radians(longitude - %[2]s) / 2), 2)))`

// PostgresResolver resolves against the ports reference table.
type PostgresResolver struct {
	db       *sql.DB
	radiusKm float64
}

// NewPostgresResolver constructs a PostgreSQL-backed port resolver.
func NewPostgresResolver(db *sql.DB, radiusKm float64) *PostgresResolver {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	return &PostgresResolver{db: db, radiusKm: radiusKm}
}

func (r *PostgresResolver) Nearest(ctx context.Context, lat, lon float64) (models.PortMatch, error) {
	box := geodesy.BoundingBox(lat, lon, r.radiusKm)
	query := fmt.Sprintf(`
		SELECT code, ihs_port_id, name, country, latitude, longitude
		FROM (
			SELECT *, %s AS km
			FROM ports
			WHERE latitude BETWEEN $3 AND $4
			  AND ($7 OR longitude BETWEEN $5 AND $6)
		) candidates
		WHERE km <= $8
		ORDER BY km
		LIMIT 1
	`, fmt.Sprintf(haversineKm, "$1", "$2"))

	row := r.db.QueryRowContext(ctx, query,
		lat, lon, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, box.WrapsLon, r.radiusKm)
	port, err := scanPort(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NoMatch, nil
	}
	if err != nil {
		return models.NoMatch, fmt.Errorf("nearest port: %w", err)
	}
	return port, nil
}

func (r *PostgresResolver) ByField(ctx context.Context, field ports.PortField, value string) (models.PortMatch, error) {
	var column string
	switch field {
	case ports.PortFieldIHSID:
		column = "ihs_port_id"
	case ports.PortFieldName:
		column = "name"
	case ports.PortFieldCode:
		column = "code"
	default:
		return models.NoMatch, dErrors.New(dErrors.CodeInvalidInput, "unsupported port field: "+string(field))
	}
	if value == "" {
		return models.NoMatch, nil
	}

	query := fmt.Sprintf(`
		SELECT code, ihs_port_id, name, country, latitude, longitude
		FROM ports
		WHERE lower(%s) = lower($1)
		ORDER BY code
		LIMIT 1
	`, column)
	port, err := scanPort(r.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return models.NoMatch, nil
	}
	if err != nil {
		return models.NoMatch, fmt.Errorf("port by %s: %w", column, err)
	}
	return port, nil
}

// NearestBatch resolves positions in chunks, one round trip per chunk, with
// a lateral nearest-port subquery per unnested coordinate pair.
func (r *PostgresResolver) NearestBatch(ctx context.Context, positions []models.Position) ([]models.PortMatch, error) {
	out := make([]models.PortMatch, len(positions))

	var (
		lats, lons []float64
		index      []int
	)
	flush := func() error {
		if len(index) == 0 {
			return nil
		}
		matches, err := r.nearestChunk(ctx, lats, lons)
		if err != nil {
			return err
		}
		for j, m := range matches {
			out[index[j]] = m
		}
		lats, lons, index = lats[:0], lons[:0], index[:0]
		return nil
	}

	for i, p := range positions {
		if !p.HasFix() {
			continue
		}
		lat, lon := p.LatLon()
		lats = append(lats, lat)
		lons = append(lons, lon)
		index = append(index, i)
		if len(index) == batchChunk {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResolver) nearestChunk(ctx context.Context, lats, lons []float64) ([]models.PortMatch, error) {
	dLat := r.radiusKm / geodesy.KmPerDegreeLat
	query := fmt.Sprintf(`
		SELECT q.idx, p.code, p.ihs_port_id, p.name, p.country, p.latitude, p.longitude
		FROM unnest($1::float8[], $2::float8[]) WITH ORDINALITY AS q(lat, lon, idx)
		LEFT JOIN LATERAL (
			SELECT code, ihs_port_id, name, country, latitude, longitude, %s AS km
			FROM ports
			WHERE latitude BETWEEN q.lat - $3 AND q.lat + $3
			ORDER BY km
			LIMIT 1
		) p ON p.km <= $4
		ORDER BY q.idx
	`, fmt.Sprintf(haversineKm, "q.lat", "q.lon"))

	rows, err := r.db.QueryContext(ctx, query, pq.Array(lats), pq.Array(lons), dLat, r.radiusKm)
	if err != nil {
		return nil, fmt.Errorf("nearest port batch: %w", err)
	}
	defer rows.Close()

	out := make([]models.PortMatch, len(lats))
	for rows.Next() {
		var (
			idx       int64
			code      sql.NullString
			ihsPortID sql.NullString
			name      sql.NullString
			country   sql.NullString
			lat, lon  sql.NullFloat64
		)
		if err := rows.Scan(&idx, &code, &ihsPortID, &name, &country, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scan nearest port batch: %w", err)
		}
		if !code.Valid {
			continue
		}
		out[idx-1] = toPortMatch(code, ihsPortID, name, country, lat, lon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nearest port batch: %w", err)
	}
	return out, nil
}

func scanPort(row *sql.Row) (models.PortMatch, error) {
	var (
		code, ihsPortID, name, country sql.NullString
		lat, lon                       sql.NullFloat64
	)
	if err := row.Scan(&code, &ihsPortID, &name, &country, &lat, &lon); err != nil {
		return models.NoMatch, err
	}
	return toPortMatch(code, ihsPortID, name, country, lat, lon), nil
}

func toPortMatch(code, ihsPortID, name, country sql.NullString, lat, lon sql.NullFloat64) models.PortMatch {
	p := models.PortMatch{
		Code:      code.String,
		IHSPortID: ihsPortID.String,
		Name:      name.String,
		Country:   country.String,
	}
	if lat.Valid && lon.Valid {
		p.Latitude = models.Float(lat.Float64)
		p.Longitude = models.Float(lon.Float64)
	}
	return p
}
