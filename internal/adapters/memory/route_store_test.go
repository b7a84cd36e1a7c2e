package memory

import (
	"context"
	"map-route-service/internal/domain"
	"testing"
	"time"
)

func TestRouteStoreAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	s := NewRouteStore()

	first := domain.Route{Points: []domain.GeoPoint{{Lat: 1, Lng: 1}}, CreatedAt: time.Unix(1, 0).UTC()}
	second := domain.Route{Points: []domain.GeoPoint{{Lat: 2, Lng: 2}}, CreatedAt: time.Unix(2, 0).UTC()}

	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	routes, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("len(routes) = %d, want 2", len(routes))
	}
	if !routes[0].CreatedAt.Equal(first.CreatedAt) || !routes[1].CreatedAt.Equal(second.CreatedAt) {
		t.Fatalf("routes out of order: %v", routes)
	}

	// Callers cannot mutate stored routes through the returned slices.
	routes[0].Points[0].Lat = 50
	again, _ := s.ListAll(ctx)
	if again[0].Points[0].Lat != 1 {
		t.Fatalf("stored point mutated to %v", again[0].Points[0].Lat)
	}
}

func TestRouteStoreSaveHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewRouteStore()
	if err := s.Save(ctx, domain.Route{}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
