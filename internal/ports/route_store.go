package ports

import (
	"context"
	"map-route-service/internal/domain"
)

// Port: an append-only log of saved routes.
type RouteStore interface {
	// Append a route. Existing entries are never modified or reordered.
	Save(ctx context.Context, route domain.Route) error
	// Return every saved route, oldest first.
	ListAll(ctx context.Context) ([]domain.Route, error)
}
