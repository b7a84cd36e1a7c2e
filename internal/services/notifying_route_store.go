package services

import (
	"context"
	"map-route-service/internal/domain"
	"map-route-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

// NotifyingRouteStore publishes a route.saved event after each successful save.
// A publish failure is logged only: the route is already durable at that point.
type NotifyingRouteStore struct {
	Inner     ports.RouteStore
	Publisher ports.RouteEventPublisher
	Logger    *zap.Logger
	now       func() time.Time
}

func NewNotifyingRouteStore(inner ports.RouteStore, publisher ports.RouteEventPublisher, logger *zap.Logger) *NotifyingRouteStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifyingRouteStore{Inner: inner, Publisher: publisher, Logger: logger, now: time.Now}
}

func (s *NotifyingRouteStore) Save(ctx context.Context, route domain.Route) error {
	if err := s.Inner.Save(ctx, route); err != nil {
		return err
	}

	if s.Publisher == nil {
		return nil
	}

	evt := domain.NewRouteSavedEvent(route, s.now())
	if err := s.Publisher.PublishRouteSaved(ctx, evt); err != nil {
		s.Logger.Error("failed to publish route saved event",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
	}
	return nil
}

func (s *NotifyingRouteStore) ListAll(ctx context.Context) ([]domain.Route, error) {
	return s.Inner.ListAll(ctx)
}
