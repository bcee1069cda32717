package services

import (
	"math"
	"trip-planner-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Sentinel values for the pointsBetween parameter of SimplifyLineString.
const (
	// AllPoints returns the original point sequence unchanged.
	AllPoints = -1
	// EndpointsOnly returns exactly the first and last point.
	EndpointsOnly = 0
)

// SimplifyLineString reduces a line to a bounded set of representative
// points so that a region with thousands of road edges does not produce an
// intractably long coordinate list for a routing request.
//
// pointsBetween = AllPoints is the identity; EndpointsOnly keeps only the
// endpoints; k > 0 returns k+2 points selected at evenly spaced index
// positions (not evenly spaced by arc length). Values below -1 are
// invalid.
func SimplifyLineString(line orb.LineString, pointsBetween int) ([]orb.Point, error) {
	if len(line) < 2 {
		return nil, domain.NewValidationError("simplify: line must have at least 2 points, got %d", len(line))
	}

	switch {
	case pointsBetween < AllPoints:
		return nil, domain.NewValidationError("simplify: points between must be non-negative or -1, got %d", pointsBetween)
	case pointsBetween == AllPoints:
		return append([]orb.Point(nil), line...), nil
	case pointsBetween == EndpointsOnly:
		return []orb.Point{line[0], line[len(line)-1]}, nil
	}

	return sampleByIndex(line, pointsBetween+2), nil
}

// AutoSimplifyLineString derives the output cardinality from the line's
// planar length in its native unit: clamp(3, 20, floor(length/1000)+2).
// The formula is preserved exactly; consumers depend on its specific
// output cardinality.
func AutoSimplifyLineString(line orb.LineString) ([]orb.Point, error) {
	if len(line) < 2 {
		return nil, domain.NewValidationError("simplify: line must have at least 2 points, got %d", len(line))
	}

	numPoints := int(planar.Length(line)/1000) + 2
	if numPoints < 3 {
		numPoints = 3
	}
	if numPoints > 20 {
		numPoints = 20
	}

	return sampleByIndex(line, numPoints), nil
}

// sampleByIndex picks count points at evenly spaced index positions via
// linear interpolation over [0, len-1], rounding each position to the
// nearest original index. Very short lines may yield duplicate indices.
func sampleByIndex(line orb.LineString, count int) []orb.Point {
	out := make([]orb.Point, 0, count)
	last := float64(len(line) - 1)
	for i := 0; i < count; i++ {
		pos := last * float64(i) / float64(count-1)
		out = append(out, line[int(math.Round(pos))])
	}
	return out
}
