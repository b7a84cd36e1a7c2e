package handlers

import (
	"map-route-service/internal/services"
	"net/http"
)

type HealthHandler struct {
	Registry *services.SessionRegistry
}

// Health is a liveness check that also reports how many map views are open.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{"status": "ok", "sessions": h.Registry.Len()}
	writeJSON(w, r, http.StatusOK, res)
}
