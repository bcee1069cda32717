package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for computing an ordered trip through a coordinate list
// via an external routing service.
type TripRequester interface {
	// RequestTrip encodes coords (ordered (lat, lon) pairs) into a trip
	// request and returns the resulting route segments in travel order.
	//
	// Failure classes are reported as typed errors: *domain.ServiceError
	// for a non-success service response (status and body preserved),
	// *domain.TransportError for URL/timeout/network failures, and
	// domain.ErrNoRouteFound when the service produced zero usable
	// segments.
	RequestTrip(ctx context.Context, coords [][]float64, profile string, roundtrip bool) (domain.Route, error)
}
