package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// SQLTripStore is a postgres-backed implementation of the TripStore port.
type SQLTripStore struct{ DB *sql.DB }

func NewSQLTripStore(db *sql.DB) *SQLTripStore {
	return &SQLTripStore{DB: db}
}

// InitPostgresSchema initializes the postgres trips schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		profile TEXT NOT NULL,
		roundtrip BOOLEAN NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		estimated_hours DOUBLE PRECISION NOT NULL,
		coverage_distance_m DOUBLE PRECISION,
		covered_count INTEGER NOT NULL,
		waypoints_geojson TEXT NOT NULL,
		route_geojson TEXT NOT NULL,
		uncovered_geojson TEXT NOT NULL
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init schema: create trips table: %w", err)
	}
	return nil
}

// SaveTrip stores one planned trip and returns its assigned id.
func (s *SQLTripStore) SaveTrip(ctx context.Context, rec *domain.TripRecord) (_ int64, err error) {
	defer obs.Time(ctx, "store.SaveTrip")(&err)

	if s.DB == nil {
		return 0, errors.New("sql trip store: DB is nil")
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
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING trip_id;
	`

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err = s.DB.QueryRowContext(ctx, query,
		createdAt,
		rec.Profile,
		rec.Roundtrip,
		rec.DistanceKm,
		rec.EstimatedHours,
		rec.CoverageDistanceM,
		rec.CoveredCount,
		rec.WaypointsGeoJSON,
		rec.RouteGeoJSON,
		rec.UncoveredGeoJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save trip: insert trips row: %w", err)
	}

	return id, nil
}

// GetTrip retrieves one stored trip by id.
func (s *SQLTripStore) GetTrip(ctx context.Context, id int64) (_ *domain.TripRecord, err error) {
	defer obs.Time(ctx, "store.GetTrip")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip store: DB is nil")
	}

	query := tripSelectColumns + `
	FROM trips
	WHERE trip_id = $1;
	`

	rec, err := scanPostgresTrip(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}
	return rec, nil
}

// ListTrips returns all stored trips, newest first.
func (s *SQLTripStore) ListTrips(ctx context.Context) (_ []*domain.TripRecord, err error) {
	defer obs.Time(ctx, "store.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip store: DB is nil")
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
		rec, err := scanPostgresTrip(rows)
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

func scanPostgresTrip(row rowScanner) (*domain.TripRecord, error) {
	var rec domain.TripRecord
	err := row.Scan(
		&rec.TripID,
		&rec.CreatedAt,
		&rec.Profile,
		&rec.Roundtrip,
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
	return &rec, nil
}
