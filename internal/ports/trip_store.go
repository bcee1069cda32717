package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for persisting planned trips.
type TripStore interface {
	// SaveTrip stores a planned trip and returns its assigned id.
	SaveTrip(ctx context.Context, rec *domain.TripRecord) (int64, error)

	// GetTrip retrieves one stored trip; domain.ErrTripNotFound when the
	// id is unknown.
	GetTrip(ctx context.Context, id int64) (*domain.TripRecord, error)

	// ListTrips returns all stored trips, newest first.
	ListTrips(ctx context.Context) ([]*domain.TripRecord, error)
}
