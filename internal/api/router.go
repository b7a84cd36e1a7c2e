package api

import (
	"map-route-service/internal/api/handlers"
	"map-route-service/internal/ports"
	"map-route-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP API is built from.
type Deps struct {
	Registry    *services.SessionRegistry
	Store       ports.RouteStore
	Renderer    ports.OverlayRenderer
	Preferences *services.PreferencesService
	Logger      *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	sessions := &handlers.SessionHandler{Registry: d.Registry}
	routes := &handlers.RouteHandler{Store: d.Store, Renderer: d.Renderer}
	prefs := &handlers.PreferencesHandler{Service: d.Preferences}
	health := &handlers.HealthHandler{Registry: d.Registry}

	mux.HandleFunc("/health", health.Health)

	mux.HandleFunc("POST /sessions", sessions.Create)
	mux.HandleFunc("GET /sessions/{id}", sessions.Get)
	mux.HandleFunc("DELETE /sessions/{id}", sessions.Close)
	mux.HandleFunc("POST /sessions/{id}/draw/start", sessions.Start)
	mux.HandleFunc("POST /sessions/{id}/draw/toggle", sessions.Toggle)
	mux.HandleFunc("POST /sessions/{id}/draw/points", sessions.AppendPoints)
	mux.HandleFunc("POST /sessions/{id}/draw/finish", sessions.Finish)
	mux.HandleFunc("POST /sessions/{id}/draw/cancel", sessions.Cancel)
	mux.HandleFunc("POST /sessions/{id}/save", sessions.Save)
	mux.HandleFunc("GET /sessions/{id}/overlay", sessions.Overlay)

	mux.HandleFunc("GET /routes", routes.List)
	mux.HandleFunc("GET /routes/geojson", routes.GeoJSON)

	mux.HandleFunc("GET /preferences", prefs.Get)
	mux.HandleFunc("PUT /preferences", prefs.Put)
	mux.HandleFunc("GET /map/config", prefs.MapConfig)

	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return loggingMiddleware(logger, mux)
}
