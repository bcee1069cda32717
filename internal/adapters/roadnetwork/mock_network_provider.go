package roadnetwork

import (
	"context"
	"trip-planner-service/internal/domain"

	"github.com/paulmach/orb"
)

// MockNetworkProvider serves a fixed network and records how often it was
// invoked, so tests can assert the collaborator was (or was not) consulted.
type MockNetworkProvider struct {
	Network *domain.RoadNetwork
	Err     error
	Calls   int
}

func (m *MockNetworkProvider) FetchNetwork(ctx context.Context, region orb.Ring, kind domain.NetworkKind) (*domain.RoadNetwork, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Network == nil {
		return &domain.RoadNetwork{}, nil
	}
	return m.Network, nil
}
