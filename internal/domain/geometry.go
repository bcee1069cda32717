package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Frame identifies the coordinate reference frame geometry is expressed in.
//
// All interchange geometry is geographic (WGS84 degrees). Distance
// thresholds are only ever evaluated in a locally accurate metric frame;
// comparing distances in degrees is invalid.
type Frame string

const (
	// FrameGeographic is WGS84 longitude/latitude degrees (EPSG:4326).
	FrameGeographic Frame = "EPSG:4326"
	// FrameLocalMetric is a locally accurate planar frame in meters.
	FrameLocalMetric Frame = "local-metric"
)

// Waypoint is a single user-supplied point to visit. Index preserves the
// position in the uploaded collection so results can be correlated back to
// the original feature; Properties carries its original attributes.
type Waypoint struct {
	Index      int
	Point      orb.Point // lon, lat
	Properties map[string]interface{}
}

// WaypointSet is the ordered waypoint collection supplied by the caller,
// tagged with the frame its coordinates are expressed in. Order is not
// semantically meaningful for routing but must survive for display
// correlation.
type WaypointSet struct {
	Frame  Frame
	Points []Waypoint
}

// Coordinates returns the bare geographic points of the set, in order.
func (ws WaypointSet) Coordinates() []orb.Point {
	pts := make([]orb.Point, 0, len(ws.Points))
	for _, wp := range ws.Points {
		pts = append(pts, wp.Point)
	}
	return pts
}

// Route is the ordered segment sequence returned by the routing service,
// in travel order, geographic frame.
type Route []orb.LineString

// LengthMeters returns the geodesic length of the whole route.
func (r Route) LengthMeters() float64 {
	total := 0.0
	for _, seg := range r {
		total += geo.Length(seg)
	}
	return total
}

// PointCoverage classifies one original waypoint against a computed route.
// DistanceMeters is only meaningful when Covered is true.
type PointCoverage struct {
	Waypoint       Waypoint
	Covered        bool
	DistanceMeters float64
}

// CoverageSummary is the result of verifying a route against the original
// waypoint set at a given tolerance.
type CoverageSummary struct {
	MaxDistanceMeters float64
	CoveredCount      int
	PerPoint          []PointCoverage
	Uncovered         []Waypoint
}
