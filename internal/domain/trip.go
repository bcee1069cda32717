package domain

import "time"

// TripStats are the summary figures shown alongside a planned trip.
type TripStats struct {
	DistanceKm     float64
	EstimatedHours float64
}

// TripPlan is the outcome of a successful planning run. Coverage is nil
// when no coverage tolerance was requested.
type TripPlan struct {
	Route     Route
	Profile   TransportProfile
	Roundtrip bool
	Stats     TripStats
	Coverage  *CoverageSummary
}

// TripRecord is a persisted trip. Geometry is stored as GeoJSON text in
// the geographic frame; UncoveredGeoJSON is empty when coverage was not
// requested.
type TripRecord struct {
	TripID            int64
	CreatedAt         time.Time
	Profile           string
	Roundtrip         bool
	DistanceKm        float64
	EstimatedHours    float64
	CoverageDistanceM *float64
	CoveredCount      int
	WaypointsGeoJSON  string
	RouteGeoJSON      string
	UncoveredGeoJSON  string
}
