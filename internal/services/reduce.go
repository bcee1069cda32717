package services

import (
	"context"
	"fmt"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/geo"
	"trip-planner-service/internal/ports"

	"github.com/paulmach/orb"
)

// HullBufferDegrees is the fixed geographic margin applied around the
// waypoint hull when bounding the road network region to consider.
const HullBufferDegrees = 0.01

// WaypointRegion returns the buffered convex hull enclosing all waypoints,
// as a closed ring in the geographic frame.
func WaypointRegion(waypoints domain.WaypointSet) (orb.Ring, error) {
	if len(waypoints.Points) == 0 {
		return nil, domain.NewValidationError("waypoint region: waypoint set is empty")
	}

	region, ok := geo.BufferedHull(waypoints.Coordinates(), HullBufferDegrees)
	if !ok || len(region) < 4 {
		return nil, domain.NewValidationError("waypoint region: hull is not a valid polygon")
	}
	return region, nil
}

// ReduceWaypoints turns N raw waypoints into a smaller route-relevant
// coordinate list: it bounds the region, acquires and normalizes the road
// network, maps every waypoint to its closest edge (no distance cap),
// drops edges outside allowedClasses (when non-empty), and concatenates
// the surviving edges' full point sequences in join row order.
//
// The result is ordered (lat, lon) pairs ready for polyline encoding.
// domain.ErrNoUsableWaypoints is returned when nothing survives filtering;
// callers must treat that as a distinct failure, not a degenerate route.
func ReduceWaypoints(
	ctx context.Context,
	waypoints domain.WaypointSet,
	provider ports.RoadNetworkProvider,
	kind domain.NetworkKind,
	allowedClasses []string,
) ([][]float64, error) {
	region, err := WaypointRegion(waypoints)
	if err != nil {
		return nil, fmt.Errorf("reduce waypoints: %w", err)
	}

	network, err := provider.FetchNetwork(ctx, region, kind)
	if err != nil {
		return nil, fmt.Errorf("reduce waypoints: fetch road network: %w", err)
	}

	segments, err := NormalizeNetwork(network.Edges)
	if err != nil {
		return nil, fmt.Errorf("reduce waypoints: %w", err)
	}

	// Selection, not point-count reduction: every waypoint maps to its
	// closest edge, however far away.
	matches := JoinNearestLines(waypoints.Coordinates(), segmentLines(segments), UnlimitedDistance, JoinInner)

	allowed := make(map[string]struct{}, len(allowedClasses))
	for _, class := range allowedClasses {
		allowed[class] = struct{}{}
	}

	// An edge matched by several waypoints contributes its coordinates
	// once, at its first join row.
	seen := make(map[int]struct{}, len(matches))
	coords := make([][]float64, 0, len(matches)*4)
	for _, m := range matches {
		if len(allowed) > 0 {
			if _, ok := allowed[segments[m.LineIndex].Highway]; !ok {
				continue
			}
		}
		if _, ok := seen[m.LineIndex]; ok {
			continue
		}
		seen[m.LineIndex] = struct{}{}

		pts, err := SimplifyLineString(segments[m.LineIndex].Line, AllPoints)
		if err != nil {
			return nil, fmt.Errorf("reduce waypoints: extract edge %d: %w", m.LineIndex, err)
		}

		// Storage order is (lon, lat); polyline encoding expects (lat, lon).
		for _, pt := range pts {
			coords = append(coords, []float64{pt.Lat(), pt.Lon()})
		}
	}

	if len(coords) == 0 {
		return nil, domain.ErrNoUsableWaypoints
	}

	return coords, nil
}
