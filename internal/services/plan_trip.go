package services

import (
	"context"
	"fmt"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"github.com/paulmach/orb"
)

// PlanTripRequest carries everything one planning run needs.
type PlanTripRequest struct {
	Waypoints domain.WaypointSet
	Profile   domain.TransportProfile
	Roundtrip bool

	// Optimize runs waypoint reduction; otherwise the waypoints pass
	// through to the routing request unchanged.
	Optimize bool

	// AllowedRoadClasses restricts which road classes participate in
	// reduction; empty means no restriction.
	AllowedRoadClasses []string

	// Optional explicit trip endpoints, geographic frame.
	StartPoint *orb.Point
	EndPoint   *orb.Point

	// MaxCoverageDistanceM, when set, verifies which waypoints the
	// computed route services within that many meters.
	MaxCoverageDistanceM *float64
}

// PlanTrip is the full pipeline in one stateless call: validation,
// optional waypoint reduction, the routing service trip request, and
// optional coverage verification. Each invocation is self-contained; no
// state is held between calls.
//
// Failures are typed: *domain.ValidationError before any network call,
// *domain.ServiceError / *domain.TransportError from the routing boundary,
// and the domain.ErrNoRouteFound / domain.ErrNoUsableWaypoints outcomes,
// all reachable through errors.As / errors.Is.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	network ports.RoadNetworkProvider,
	trips ports.TripRequester,
) (*domain.TripPlan, error) {
	if len(req.Waypoints.Points) == 0 {
		return nil, domain.NewValidationError("plan trip: waypoint set is empty")
	}
	if req.Waypoints.Frame == "" {
		return nil, domain.NewValidationError("plan trip: waypoint set has no coordinate frame")
	}
	if req.Waypoints.Frame != domain.FrameGeographic {
		return nil, domain.NewValidationError("plan trip: waypoints must be in %s, got %s", domain.FrameGeographic, req.Waypoints.Frame)
	}

	var coords [][]float64
	if req.Optimize {
		reduced, err := ReduceWaypoints(ctx, req.Waypoints, network, req.Profile.Network, req.AllowedRoadClasses)
		if err != nil {
			return nil, fmt.Errorf("plan trip: %w", err)
		}
		coords = reduced
	} else {
		coords = make([][]float64, 0, len(req.Waypoints.Points)+2)
		for _, wp := range req.Waypoints.Points {
			coords = append(coords, []float64{wp.Point.Lat(), wp.Point.Lon()})
		}
	}

	if req.StartPoint != nil {
		coords = append([][]float64{{req.StartPoint.Lat(), req.StartPoint.Lon()}}, coords...)
	}
	if req.EndPoint != nil {
		coords = append(coords, []float64{req.EndPoint.Lat(), req.EndPoint.Lon()})
	}

	route, err := trips.RequestTrip(ctx, coords, req.Profile.OSRMProfile, req.Roundtrip)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	plan := &domain.TripPlan{
		Route:     route,
		Profile:   req.Profile,
		Roundtrip: req.Roundtrip,
		Stats:     routeStats(route, req.Profile),
	}

	if req.MaxCoverageDistanceM != nil {
		coverage, err := VerifyCoverage(req.Waypoints, route, *req.MaxCoverageDistanceM)
		if err != nil {
			return nil, fmt.Errorf("plan trip: %w", err)
		}
		plan.Coverage = coverage
	}

	return plan, nil
}

// routeStats derives the display statistics for a planned route using the
// profile's average speed.
func routeStats(route domain.Route, profile domain.TransportProfile) domain.TripStats {
	km := route.LengthMeters() / 1000
	stats := domain.TripStats{DistanceKm: km}
	if profile.AvgSpeedKmh > 0 {
		stats.EstimatedHours = km / profile.AvgSpeedKmh
	}
	return stats
}
