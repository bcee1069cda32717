package geo

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// ConvexHull computes the convex hull of points with the monotone chain
// algorithm. Vertices come back in counter-clockwise order, unclosed.
// Degenerate inputs (fewer than 3 distinct points) return what remains
// after deduplication.
func ConvexHull(points []orb.Point) []orb.Point {
	pts := make([]orb.Point, len(points))
	copy(pts, points)

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X() != pts[j].X() {
			return pts[i].X() < pts[j].X()
		}
		return pts[i].Y() < pts[j].Y()
	})

	uniq := pts[:0]
	for _, p := range pts {
		if len(uniq) == 0 || p != uniq[len(uniq)-1] {
			uniq = append(uniq, p)
		}
	}
	pts = uniq

	if len(pts) < 3 {
		return append([]orb.Point(nil), pts...)
	}

	cross := func(o, a, b orb.Point) float64 {
		return (a.X()-o.X())*(b.Y()-o.Y()) - (a.Y()-o.Y())*(b.X()-o.X())
	}

	var lower []orb.Point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []orb.Point
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Endpoints are shared between the chains.
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// BufferedHull returns a closed ring enclosing all points: the convex hull
// expanded outward by margin (same unit as the coordinates). Hulls too
// degenerate to offset (collinear or near-coincident points) fall back to
// the padded bounding box, so a valid single polygon always comes back for
// non-empty input.
func BufferedHull(points []orb.Point, margin float64) (orb.Ring, bool) {
	if len(points) == 0 {
		return nil, false
	}

	hull := ConvexHull(points)
	if len(hull) < 3 {
		return paddedBound(points, margin), true
	}

	out := make(orb.Ring, 0, len(hull)+1)
	n := len(hull)
	for i, v := range hull {
		prev := hull[(i-1+n)%n]
		next := hull[(i+1)%n]

		n1 := outwardNormal(prev, v)
		n2 := outwardNormal(v, next)

		bx, by := n1[0]+n2[0], n1[1]+n2[1]
		blen := math.Hypot(bx, by)
		if blen == 0 {
			// Opposing normals: spike vertex, offset along either normal.
			out = append(out, orb.Point{v.X() + n1[0]*margin, v.Y() + n1[1]*margin})
			continue
		}
		bx, by = bx/blen, by/blen

		// Miter offset: scale by the half-angle so edges stay margin away.
		cosHalf := math.Sqrt(math.Max(0, (1+n1[0]*n2[0]+n1[1]*n2[1])/2))
		if cosHalf < 0.1 {
			cosHalf = 0.1
		}
		scale := margin / cosHalf

		out = append(out, orb.Point{v.X() + bx*scale, v.Y() + by*scale})
	}

	out = append(out, out[0])
	return out, true
}

// outwardNormal returns the unit normal on the outside of a CCW edge a->b.
func outwardNormal(a, b orb.Point) [2]float64 {
	dx := b.X() - a.X()
	dy := b.Y() - a.Y()
	l := math.Hypot(dx, dy)
	if l == 0 {
		return [2]float64{0, 0}
	}
	return [2]float64{dy / l, -dx / l}
}

func paddedBound(points []orb.Point, margin float64) orb.Ring {
	b := orb.MultiPoint(points).Bound()
	minX, minY := b.Min.X()-margin, b.Min.Y()-margin
	maxX, maxY := b.Max.X()+margin, b.Max.Y()+margin
	return orb.Ring{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
		{minX, minY},
	}
}
