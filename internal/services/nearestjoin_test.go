package services

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

// metersToLatDegrees converts a northward ground distance into degrees of
// latitude, so test fixtures can be placed at exact metric offsets.
func metersToLatDegrees(m float64) float64 {
	return m / (6371008.8 * math.Pi / 180)
}

func horizontalLine(lat float64) orb.LineString {
	return orb.LineString{{0, lat}, {0.001, lat}}
}

func TestJoinNearestLinesPicksClosest(t *testing.T) {
	lines := []orb.LineString{
		horizontalLine(45),
		horizontalLine(45 + metersToLatDegrees(100)),
	}
	points := []orb.Point{{0.0005, 45 + metersToLatDegrees(5)}}

	matches := JoinNearestLines(points, lines, UnlimitedDistance, JoinInner)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.PointIndex != 0 || m.LineIndex != 0 {
		t.Fatalf("matched point %d to line %d, want 0 to 0", m.PointIndex, m.LineIndex)
	}
	if math.Abs(m.DistanceMeters-5) > 0.01 {
		t.Fatalf("distance = %v m, want 5", m.DistanceMeters)
	}
}

func TestJoinNearestLinesDistanceCap(t *testing.T) {
	lines := []orb.LineString{horizontalLine(45)}
	points := []orb.Point{{0.0005, 45 + metersToLatDegrees(5)}}

	if matches := JoinNearestLines(points, lines, 10, JoinInner); len(matches) != 1 {
		t.Fatalf("cap 10 m: got %d matches, want 1", len(matches))
	}

	if matches := JoinNearestLines(points, lines, 1, JoinInner); len(matches) != 0 {
		t.Fatalf("cap 1 m inner: got %d matches, want 0", len(matches))
	}

	matches := JoinNearestLines(points, lines, 1, JoinLeft)
	if len(matches) != 1 {
		t.Fatalf("cap 1 m left: got %d matches, want 1", len(matches))
	}
	if matches[0].LineIndex != NoMatch {
		t.Fatalf("cap 1 m left: line index = %d, want NoMatch", matches[0].LineIndex)
	}
}

func TestJoinNearestLinesTieKeepsEarliestLine(t *testing.T) {
	lines := []orb.LineString{horizontalLine(45), horizontalLine(45)}
	points := []orb.Point{{0.0005, 45 + metersToLatDegrees(5)}}

	matches := JoinNearestLines(points, lines, UnlimitedDistance, JoinInner)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].LineIndex != 0 {
		t.Fatalf("tie resolved to line %d, want 0", matches[0].LineIndex)
	}
}

func TestJoinNearestLinesPreservesPointOrder(t *testing.T) {
	lines := []orb.LineString{
		horizontalLine(45),
		horizontalLine(45.01),
	}
	points := []orb.Point{
		{0.0005, 45.01 + metersToLatDegrees(3)},
		{0.0005, 45 + metersToLatDegrees(3)},
	}

	matches := JoinNearestLines(points, lines, UnlimitedDistance, JoinInner)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].PointIndex != 0 || matches[0].LineIndex != 1 {
		t.Fatalf("match 0 = %+v", matches[0])
	}
	if matches[1].PointIndex != 1 || matches[1].LineIndex != 0 {
		t.Fatalf("match 1 = %+v", matches[1])
	}
}
