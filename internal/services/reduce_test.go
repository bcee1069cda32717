package services

import (
	"context"
	"errors"
	"testing"
	"trip-planner-service/internal/adapters/roadnetwork"
	"trip-planner-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

func reduceFixture() (domain.WaypointSet, *roadnetwork.MockNetworkProvider) {
	residential := orb.LineString{{0, 45}, {0.0005, 45}, {0.001, 45}}
	motorway := orb.LineString{{0, 45.001}, {0.001, 45.001}}

	network := &domain.RoadNetwork{
		Edges: []domain.RawRoadSegment{
			{Line: residential, Tags: map[string][]string{"highway": {"residential"}}},
			{Line: motorway, Tags: map[string][]string{"highway": {"motorway"}}},
		},
	}

	waypoints := domain.WaypointSet{
		Frame: domain.FrameGeographic,
		Points: []domain.Waypoint{
			{Index: 0, Point: orb.Point{0.0002, 45 + metersToLatDegrees(5)}},
			{Index: 1, Point: orb.Point{0.0005, 45.001 + metersToLatDegrees(5)}},
			{Index: 2, Point: orb.Point{0.0008, 45 + metersToLatDegrees(3)}},
		},
	}

	return waypoints, &roadnetwork.MockNetworkProvider{Network: network}
}

func TestReduceWaypointsConcatenatesMatchedEdges(t *testing.T) {
	waypoints, provider := reduceFixture()

	coords, err := ReduceWaypoints(context.Background(), waypoints, provider, domain.NetworkDrive, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.Calls != 1 {
		t.Fatalf("network fetched %d times, want 1", provider.Calls)
	}

	// two distinct edges survive: the residential one (3 vertices, matched
	// by two waypoints but contributed once) then the motorway (2 vertices)
	if len(coords) != 5 {
		t.Fatalf("got %d coordinates, want 5", len(coords))
	}

	first := coords[0]
	if first[0] != 45 || first[1] != 0 {
		t.Fatalf("first coordinate = %v, want (lat 45, lon 0)", first)
	}
	last := coords[4]
	if last[0] != 45.001 || last[1] != 0.001 {
		t.Fatalf("last coordinate = %v, want (lat 45.001, lon 0.001)", last)
	}
}

func TestReduceWaypointsClassFilter(t *testing.T) {
	waypoints, provider := reduceFixture()

	coords, err := ReduceWaypoints(context.Background(), waypoints, provider, domain.NetworkDrive, []string{"motorway"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(coords) != 2 {
		t.Fatalf("got %d coordinates, want 2", len(coords))
	}
	if coords[0][0] != 45.001 {
		t.Fatalf("first coordinate = %v, want motorway vertex", coords[0])
	}
}

func TestReduceWaypointsNothingSurvivesFilter(t *testing.T) {
	waypoints, provider := reduceFixture()

	_, err := ReduceWaypoints(context.Background(), waypoints, provider, domain.NetworkDrive, []string{"primary"})
	if !errors.Is(err, domain.ErrNoUsableWaypoints) {
		t.Fatalf("got %v, want ErrNoUsableWaypoints", err)
	}
}

func TestReduceWaypointsProviderFailure(t *testing.T) {
	waypoints, _ := reduceFixture()
	provider := &roadnetwork.MockNetworkProvider{Err: errors.New("overpass unavailable")}

	_, err := ReduceWaypoints(context.Background(), waypoints, provider, domain.NetworkDrive, nil)
	if err == nil || !errors.Is(err, provider.Err) {
		t.Fatalf("got %v, want wrapped provider error", err)
	}
}

func TestWaypointRegionEnclosesWaypoints(t *testing.T) {
	waypoints, _ := reduceFixture()

	region, err := WaypointRegion(waypoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if region[0] != region[len(region)-1] {
		t.Fatal("region ring is not closed")
	}
	for _, wp := range waypoints.Points {
		if !planar.RingContains(region, wp.Point) {
			t.Errorf("region does not contain waypoint %d", wp.Index)
		}
	}
}

func TestWaypointRegionEmptySet(t *testing.T) {
	var vErr *domain.ValidationError
	_, err := WaypointRegion(domain.WaypointSet{Frame: domain.FrameGeographic})
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want validation error", err)
	}
}
