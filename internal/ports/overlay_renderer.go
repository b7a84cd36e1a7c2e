package ports

import "map-route-service/internal/domain"

// Renders measured paths into an overlay document the map front end can draw.
type OverlayRenderer interface {
	RenderPath(points []domain.GeoPoint, m domain.Measurement) ([]byte, error)
	RenderRoutes(routes []domain.Route) ([]byte, error)
}
