package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
)

// SQLite-backed implementation of the TripStore port.
type SqliteTripStore struct{ DB *sql.DB }

func NewSqliteTripStore(db *sql.DB) *SqliteTripStore {
	return &SqliteTripStore{DB: db}
}

// SaveTrip stores one planned trip and returns its assigned id.
func (s *SqliteTripStore) SaveTrip(ctx context.Context, rec *domain.TripRecord) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite trip store: DB is nil")
	}
	if rec == nil {
		return 0, errors.New("save trip: record is nil")
	}

	query := `
	INSERT INTO trips (
		created_at,
		profile,
		roundtrip,
		distance_km,
		estimated_hours,
		coverage_distance_m,
		covered_count,
		waypoints_geojson,
		route_geojson,
		uncovered_geojson
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.DB.ExecContext(ctx, query,
		createdAt.UTC().Format(time.RFC3339Nano),
		rec.Profile,
		boolToInt(rec.Roundtrip),
		rec.DistanceKm,
		rec.EstimatedHours,
		rec.CoverageDistanceM,
		rec.CoveredCount,
		rec.WaypointsGeoJSON,
		rec.RouteGeoJSON,
		rec.UncoveredGeoJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("save trip: insert trips row: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save trip: last insert id: %w", err)
	}
	return id, nil
}

// GetTrip retrieves one stored trip by id.
func (s *SqliteTripStore) GetTrip(ctx context.Context, id int64) (*domain.TripRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip store: DB is nil")
	}

	query := tripSelectColumns + `
	FROM trips
	WHERE trip_id = ?;
	`

	rec, err := scanTrip(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}
	return rec, nil
}

// ListTrips returns all stored trips, newest first.
func (s *SqliteTripStore) ListTrips(ctx context.Context) ([]*domain.TripRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip store: DB is nil")
	}

	query := tripSelectColumns + `
	FROM trips
	ORDER BY trip_id DESC;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.TripRecord, 0, 16)
	for rows.Next() {
		rec, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

const tripSelectColumns = `
	SELECT
		trip_id,
		created_at,
		profile,
		roundtrip,
		distance_km,
		estimated_hours,
		coverage_distance_m,
		covered_count,
		waypoints_geojson,
		route_geojson,
		uncovered_geojson
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.TripRecord, error) {
	var rec domain.TripRecord
	var createdAt string
	var roundtrip int

	err := row.Scan(
		&rec.TripID,
		&createdAt,
		&rec.Profile,
		&roundtrip,
		&rec.DistanceKm,
		&rec.EstimatedHours,
		&rec.CoverageDistanceM,
		&rec.CoveredCount,
		&rec.WaypointsGeoJSON,
		&rec.RouteGeoJSON,
		&rec.UncoveredGeoJSON,
	)
	if err != nil {
		return nil, err
	}

	rec.Roundtrip = roundtrip != 0
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}

	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
