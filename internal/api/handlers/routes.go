package handlers

import (
	"map-route-service/internal/api/dto"
	"map-route-service/internal/domain"
	"map-route-service/internal/ports"
	"net/http"
)

type RouteHandler struct {
	Store    ports.RouteStore
	Renderer ports.OverlayRenderer
}

// List returns every saved route, oldest first.
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Store.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, route := range routes {
		res.Routes = append(res.Routes, toRouteResponse(route))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// GeoJSON renders every saved route as one feature collection.
func (h *RouteHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Store.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	doc, err := h.Renderer.RenderRoutes(routes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, "application/geo+json", doc)
}

func toRouteResponse(route domain.Route) dto.RouteResponse {
	rec := route.Record()
	return dto.RouteResponse{
		Coordinates: rec.Coordinates,
		Distance:    rec.Distance,
		Time:        rec.Time,
		Timestamp:   rec.Timestamp,
	}
}
