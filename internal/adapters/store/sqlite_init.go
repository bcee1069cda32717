package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSqliteSchema initializes the SQLite trips schema.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		profile TEXT NOT NULL,
		roundtrip INTEGER NOT NULL,
		distance_km REAL NOT NULL,
		estimated_hours REAL NOT NULL,
		coverage_distance_m REAL,
		covered_count INTEGER NOT NULL,
		waypoints_geojson TEXT NOT NULL,
		route_geojson TEXT NOT NULL,
		uncovered_geojson TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at);
	`

	for i, stmt := range []string{createTripsQuery, createIndexQuery} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}
