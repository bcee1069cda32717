package domain

import "github.com/paulmach/orb"

// NetworkKind selects which road network category to acquire for a region.
type NetworkKind string

const (
	NetworkDrive NetworkKind = "drive"
	NetworkBike  NetworkKind = "bike"
	NetworkWalk  NetworkKind = "walk"
)

// RawRoadSegment is a road edge as acquired from the network source.
// A tag key may carry several candidate values for the same edge (a single
// edge spanning a short named road plus an access ramp, and similar source
// data quality issues); normalization reduces each key to one canonical
// value before any downstream use.
type RawRoadSegment struct {
	Line orb.LineString // geographic frame
	Tags map[string][]string
}

// RoadSegment is a normalized road edge: exactly one value per attribute.
type RoadSegment struct {
	Line orb.LineString // geographic frame

	// Highway is the canonical road class, used for filtering which
	// segments participate in waypoint reduction.
	Highway string

	// MaxSpeedKmh is the canonical speed limit; zero when the source
	// carried no speed tag.
	MaxSpeedKmh float64

	// Tags holds the remaining attributes, multi-valued ones collapsed to
	// a descriptive string. Display only, never used for thresholding.
	Tags map[string]string
}

// RoadNetwork is the node and edge set acquired for a region, in the
// geographic frame.
type RoadNetwork struct {
	Nodes []orb.Point
	Edges []RawRoadSegment
}
