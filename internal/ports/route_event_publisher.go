package ports

import (
	"context"
	"map-route-service/internal/domain"
)

// Contract for announcing persisted routes to downstream consumers.
type RouteEventPublisher interface {
	PublishRouteSaved(ctx context.Context, evt domain.RouteSavedEvent) error
	Close() error
}
