package services

import (
	"trip-planner-service/internal/domain"
)

// VerifyCoverage classifies which original waypoints the route actually
// services within maxDistanceMeters. Every waypoint is retained (left
// join); those with no route segment in range come back in Uncovered with
// their original attributes, still in the geographic frame.
//
// The verification is a pure function of its inputs: re-running it with
// the same route and a different tolerance mutates nothing and yields the
// same classification for the same configuration.
func VerifyCoverage(waypoints domain.WaypointSet, route domain.Route, maxDistanceMeters float64) (*domain.CoverageSummary, error) {
	if len(route) == 0 {
		return nil, domain.NewValidationError("verify coverage: route is empty")
	}
	if maxDistanceMeters < 0 {
		return nil, domain.NewValidationError("verify coverage: max distance must be non-negative, got %v", maxDistanceMeters)
	}

	matches := JoinNearestLines(waypoints.Coordinates(), route, maxDistanceMeters, JoinLeft)

	summary := &domain.CoverageSummary{
		MaxDistanceMeters: maxDistanceMeters,
		PerPoint:          make([]domain.PointCoverage, 0, len(matches)),
	}

	for _, m := range matches {
		wp := waypoints.Points[m.PointIndex]
		if m.LineIndex == NoMatch {
			summary.PerPoint = append(summary.PerPoint, domain.PointCoverage{Waypoint: wp})
			summary.Uncovered = append(summary.Uncovered, wp)
			continue
		}

		summary.CoveredCount++
		summary.PerPoint = append(summary.PerPoint, domain.PointCoverage{
			Waypoint:       wp,
			Covered:        true,
			DistanceMeters: m.DistanceMeters,
		})
	}

	return summary, nil
}
