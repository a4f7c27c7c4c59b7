package api

import (
	"net/http"

	"github.com/jamesvickers19/loco/internal/api/handlers"
	"github.com/jamesvickers19/loco/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.TripRepository, provider ports.RoutingMatrixProvider) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Repo:     repo,
		Provider: provider,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /trips", tripHandler.List)
	mux.HandleFunc("POST /trips", tripHandler.Create)
	mux.HandleFunc("GET /trips/{id}", tripHandler.Get)
	mux.HandleFunc("PUT /trips/{id}", tripHandler.Put)
	mux.HandleFunc("POST /trips/{id}/aggregate", tripHandler.Aggregate)

	return loggingMiddleware(mux)
}
