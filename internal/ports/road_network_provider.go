package ports

import (
	"context"
	"trip-planner-service/internal/domain"

	"github.com/paulmach/orb"
)

// Port: a boundary for acquiring road network topology. Implementations
// are black boxes to the planning core.
type RoadNetworkProvider interface {
	// FetchNetwork returns the nodes and edges of the given network kind
	// within region (a closed ring in the geographic frame).
	FetchNetwork(ctx context.Context, region orb.Ring, kind domain.NetworkKind) (*domain.RoadNetwork, error)
}
