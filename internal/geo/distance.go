package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// PointToSegmentDistance returns the planar distance from p to the segment
// ab, clamping the projection of p onto the segment's endpoints.
func PointToSegmentDistance(p, a, b orb.Point) float64 {
	dx := b.X() - a.X()
	dy := b.Y() - a.Y()

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return planar.Distance(p, a)
	}

	t := ((p.X()-a.X())*dx + (p.Y()-a.Y())*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	closest := orb.Point{a.X() + t*dx, a.Y() + t*dy}
	return planar.Distance(p, closest)
}

// PointToLineDistance returns the minimum planar distance from p to any
// segment of ls. A single-vertex line degenerates to point distance.
func PointToLineDistance(p orb.Point, ls orb.LineString) float64 {
	if len(ls) == 0 {
		return math.Inf(1)
	}
	if len(ls) == 1 {
		return planar.Distance(p, ls[0])
	}

	min := math.Inf(1)
	for i := 0; i < len(ls)-1; i++ {
		if d := PointToSegmentDistance(p, ls[i], ls[i+1]); d < min {
			min = d
		}
	}
	return min
}
