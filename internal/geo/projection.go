// Package geo provides the planar geometry primitives the planning
// pipeline needs on top of orb: a local metric projection, point-to-segment
// distances, and convex hull construction.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const earthRadiusMeters = 6371008.8

// Projection maps geographic coordinates onto a local planar frame in
// meters (equirectangular, centered on an origin). It is accurate for
// regions up to a few tens of kilometers across, which covers any
// trip-sized waypoint hull. Distance thresholds must only be evaluated on
// projected coordinates, never on raw degrees.
type Projection struct {
	origin orb.Point
	cosLat float64
}

func NewProjection(origin orb.Point) *Projection {
	return &Projection{
		origin: origin,
		cosLat: math.Cos(origin.Lat() * math.Pi / 180),
	}
}

// ProjectionFor centers a projection on the centroid of the given points.
func ProjectionFor(points []orb.Point) *Projection {
	if len(points) == 0 {
		return NewProjection(orb.Point{})
	}

	var sumLon, sumLat float64
	for _, p := range points {
		sumLon += p.Lon()
		sumLat += p.Lat()
	}
	n := float64(len(points))
	return NewProjection(orb.Point{sumLon / n, sumLat / n})
}

// ToMetric converts a geographic point to local planar meters.
func (p *Projection) ToMetric(pt orb.Point) orb.Point {
	x := (pt.Lon() - p.origin.Lon()) * math.Pi / 180 * earthRadiusMeters * p.cosLat
	y := (pt.Lat() - p.origin.Lat()) * math.Pi / 180 * earthRadiusMeters
	return orb.Point{x, y}
}

// ToGeographic converts a local planar point back to geographic degrees.
func (p *Projection) ToGeographic(pt orb.Point) orb.Point {
	lon := p.origin.Lon() + pt.X()/(earthRadiusMeters*p.cosLat)*180/math.Pi
	lat := p.origin.Lat() + pt.Y()/earthRadiusMeters*180/math.Pi
	return orb.Point{lon, lat}
}

// LineToMetric projects every vertex of a line.
func (p *Projection) LineToMetric(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, 0, len(ls))
	for _, pt := range ls {
		out = append(out, p.ToMetric(pt))
	}
	return out
}
