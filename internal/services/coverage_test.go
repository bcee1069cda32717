package services

import (
	"errors"
	"math"
	"testing"
	"trip-planner-service/internal/domain"

	"github.com/paulmach/orb"
)

func coverageFixture() (domain.WaypointSet, domain.Route) {
	waypoints := domain.WaypointSet{
		Frame: domain.FrameGeographic,
		Points: []domain.Waypoint{
			{Index: 0, Point: orb.Point{0.0002, 45 + metersToLatDegrees(4)}, Properties: map[string]interface{}{"name": "a"}},
			{Index: 1, Point: orb.Point{0.0006, 45 + metersToLatDegrees(8)}, Properties: map[string]interface{}{"name": "b"}},
			{Index: 2, Point: orb.Point{0.0004, 45 + metersToLatDegrees(100)}, Properties: map[string]interface{}{"name": "c"}},
		},
	}
	route := domain.Route{horizontalLine(45)}
	return waypoints, route
}

func TestVerifyCoverageClassifiesWaypoints(t *testing.T) {
	waypoints, route := coverageFixture()

	summary, err := VerifyCoverage(waypoints, route, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.CoveredCount != 2 {
		t.Fatalf("covered = %d, want 2", summary.CoveredCount)
	}
	if len(summary.PerPoint) != 3 {
		t.Fatalf("per-point entries = %d, want 3", len(summary.PerPoint))
	}
	if len(summary.Uncovered) != 1 {
		t.Fatalf("uncovered = %d, want 1", len(summary.Uncovered))
	}

	missed := summary.Uncovered[0]
	if missed.Index != 2 {
		t.Fatalf("uncovered waypoint index = %d, want 2", missed.Index)
	}
	if missed.Properties["name"] != "c" {
		t.Fatalf("uncovered waypoint lost its attributes: %v", missed.Properties)
	}

	if d := summary.PerPoint[0].DistanceMeters; math.Abs(d-4) > 0.01 {
		t.Fatalf("waypoint 0 distance = %v, want 4", d)
	}
	if summary.PerPoint[2].Covered {
		t.Fatal("waypoint 2 should not be covered")
	}
}

func TestVerifyCoverageIsRepeatable(t *testing.T) {
	waypoints, route := coverageFixture()

	first, err := VerifyCoverage(waypoints, route, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a different tolerance in between must not disturb later runs
	if _, err := VerifyCoverage(waypoints, route, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := VerifyCoverage(waypoints, route, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.CoveredCount != second.CoveredCount {
		t.Fatalf("covered count drifted: %d then %d", first.CoveredCount, second.CoveredCount)
	}
	if len(first.Uncovered) != len(second.Uncovered) {
		t.Fatalf("uncovered drifted: %d then %d", len(first.Uncovered), len(second.Uncovered))
	}
}

func TestVerifyCoverageWiderToleranceCoversMore(t *testing.T) {
	waypoints, route := coverageFixture()

	wide, err := VerifyCoverage(waypoints, route, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wide.CoveredCount != 3 || len(wide.Uncovered) != 0 {
		t.Fatalf("covered = %d uncovered = %d, want 3 and 0", wide.CoveredCount, len(wide.Uncovered))
	}
}

func TestVerifyCoverageInvalidInputs(t *testing.T) {
	waypoints, route := coverageFixture()
	var vErr *domain.ValidationError

	if _, err := VerifyCoverage(waypoints, domain.Route{}, 10); !errors.As(err, &vErr) {
		t.Fatalf("empty route: got %v, want validation error", err)
	}
	if _, err := VerifyCoverage(waypoints, route, -1); !errors.As(err, &vErr) {
		t.Fatalf("negative distance: got %v, want validation error", err)
	}
}
