package memory

import (
	"context"
	"map-route-service/internal/domain"
	"slices"
	"sync"
)

// RouteStore keeps saved routes in process memory.
type RouteStore struct {
	mu     sync.RWMutex
	routes []domain.Route
}

func NewRouteStore(seed ...domain.Route) *RouteStore {
	s := &RouteStore{}
	for _, r := range seed {
		s.routes = append(s.routes, cloneRoute(r))
	}
	return s
}

func (s *RouteStore) Save(ctx context.Context, route domain.Route) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, cloneRoute(route))
	return nil
}

func (s *RouteStore) ListAll(ctx context.Context) ([]domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Route, 0, len(s.routes))
	for _, r := range s.routes {
		out = append(out, cloneRoute(r))
	}
	return out, nil
}

func cloneRoute(r domain.Route) domain.Route {
	r.Points = slices.Clone(r.Points)
	return r
}
