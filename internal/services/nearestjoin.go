package services

import (
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/geo"

	"github.com/paulmach/orb"
)

// JoinMode controls what happens to points with no line within range.
type JoinMode int

const (
	// JoinInner drops unmatched points from the result.
	JoinInner JoinMode = iota
	// JoinLeft retains unmatched points with a null match.
	JoinLeft
)

// NoMatch is the LineIndex of a retained point with no line within range.
const NoMatch = -1

// UnlimitedDistance disables the distance cutoff.
const UnlimitedDistance = -1.0

// JoinMatch associates one input point with its nearest line.
// DistanceMeters is only meaningful when LineIndex != NoMatch.
type JoinMatch struct {
	PointIndex     int
	LineIndex      int
	DistanceMeters float64
}

// JoinNearestLines associates each geographic point with the nearest of
// the given lines. Both inputs are reprojected into a shared local metric
// frame first; maxDistanceMeters (when non-negative) caps how far a match
// may be. Exact distance ties resolve to the earliest line in input order,
// so the join is deterministic and stable for identical inputs. Indices
// refer back to the caller's geographic-frame features.
func JoinNearestLines(points []orb.Point, lines []orb.LineString, maxDistanceMeters float64, mode JoinMode) []JoinMatch {
	all := make([]orb.Point, 0, len(points)+len(lines)*2)
	all = append(all, points...)
	for _, ls := range lines {
		all = append(all, ls...)
	}
	proj := geo.ProjectionFor(all)

	metricLines := make([]orb.LineString, 0, len(lines))
	for _, ls := range lines {
		metricLines = append(metricLines, proj.LineToMetric(ls))
	}

	matches := make([]JoinMatch, 0, len(points))
	for pi, pt := range points {
		metricPt := proj.ToMetric(pt)

		best := NoMatch
		bestDist := 0.0
		for li, ls := range metricLines {
			d := geo.PointToLineDistance(metricPt, ls)
			if best == NoMatch || d < bestDist {
				best = li
				bestDist = d
			}
		}

		if best != NoMatch && maxDistanceMeters >= 0 && bestDist > maxDistanceMeters {
			best = NoMatch
		}

		if best == NoMatch {
			if mode == JoinLeft {
				matches = append(matches, JoinMatch{PointIndex: pi, LineIndex: NoMatch})
			}
			continue
		}

		matches = append(matches, JoinMatch{PointIndex: pi, LineIndex: best, DistanceMeters: bestDist})
	}

	return matches
}

// segmentLines extracts the bare geometry of normalized road segments, in
// order, for joining.
func segmentLines(segments []domain.RoadSegment) []orb.LineString {
	lines := make([]orb.LineString, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, seg.Line)
	}
	return lines
}
