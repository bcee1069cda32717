package routing

import (
	"context"
	"trip-planner-service/internal/domain"
)

// MockTripProvider serves a fixed route and records the coordinates of the
// last request, so tests can assert what reached the routing boundary.
type MockTripProvider struct {
	Route domain.Route
	Err   error

	Calls      int
	LastCoords [][]float64
}

func (m *MockTripProvider) RequestTrip(ctx context.Context, coords [][]float64, profile string, roundtrip bool) (domain.Route, error) {
	m.Calls++
	m.LastCoords = coords
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Route, nil
}
