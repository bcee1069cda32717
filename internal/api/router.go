package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters). store may be nil when persistence is disabled.
func NewRouter(network ports.RoadNetworkProvider, trips ports.TripRequester, store ports.TripStore) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Network:   network,
		Requester: trips,
		Store:     store,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/profiles", handlers.Profiles)
	mux.HandleFunc("/streets", handlers.Streets)
	mux.HandleFunc("/trips", tripHandler.Trips)
	mux.HandleFunc("/trips/{id}", tripHandler.Get)
	mux.HandleFunc("/trips/{id}/coverage", tripHandler.Coverage)

	return loggingMiddleware(mux)
}
