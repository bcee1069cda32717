package dto

import (
	"encoding/json"
	"time"
)

// PlanTripRequest is the POST /trips payload. Waypoints is a GeoJSON
// FeatureCollection of point features in the geographic frame; start and
// end points are [lon, lat].
type PlanTripRequest struct {
	Waypoints            json.RawMessage `json:"waypoints"`
	Profile              string          `json:"profile"`
	Roundtrip            bool            `json:"roundtrip"`
	Optimize             bool            `json:"optimize"`
	Streets              []string        `json:"streets"`
	StartPoint           []float64       `json:"start_point"`
	EndPoint             []float64       `json:"end_point"`
	MaxCoverageDistanceM *float64        `json:"max_coverage_distance_m"`
}

// TripResponse carries a planned trip: route and uncovered points as
// GeoJSON FeatureCollections. Coverage fields are omitted when no
// tolerance was requested.
type TripResponse struct {
	TripID         int64           `json:"trip_id,omitempty"`
	Profile        string          `json:"profile"`
	Roundtrip      bool            `json:"roundtrip"`
	DistanceKm     float64         `json:"distance_km"`
	EstimatedHours float64         `json:"estimated_hours"`
	CoveredCount   *int            `json:"covered_count,omitempty"`
	UncoveredCount *int            `json:"uncovered_count,omitempty"`
	Route          json.RawMessage `json:"route"`
	Uncovered      json.RawMessage `json:"uncovered_points,omitempty"`
}

type TripSummaryResponse struct {
	TripID         int64     `json:"trip_id"`
	CreatedAt      time.Time `json:"created_at"`
	Profile        string    `json:"profile"`
	Roundtrip      bool      `json:"roundtrip"`
	DistanceKm     float64   `json:"distance_km"`
	EstimatedHours float64   `json:"estimated_hours"`
	CoveredCount   int       `json:"covered_count"`
}

type ListTripsResponse struct {
	Trips []TripSummaryResponse `json:"trips"`
}

// CoverageRequest re-verifies a stored trip at a new tolerance.
type CoverageRequest struct {
	MaxDistanceM float64 `json:"max_distance_m"`
}

type CoverageResponse struct {
	TripID         int64           `json:"trip_id"`
	MaxDistanceM   float64         `json:"max_distance_m"`
	CoveredCount   int             `json:"covered_count"`
	UncoveredCount int             `json:"uncovered_count"`
	Uncovered      json.RawMessage `json:"uncovered_points"`
}

type ProfileResponse struct {
	DisplayName string  `json:"display_name"`
	OSRMProfile string  `json:"osrm_profile"`
	Network     string  `json:"network"`
	AvgSpeedKmh float64 `json:"avg_speed_kmh"`
}

type ListProfilesResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}
