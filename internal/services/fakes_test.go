package services

import (
	"context"
	"errors"
	"map-route-service/internal/domain"
	"map-route-service/internal/ports"
	"sync"
)

type fakeRouteStore struct {
	mu     sync.Mutex
	routes []domain.Route
	err    error

	// When set, Save signals entered and then waits for release.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeRouteStore) Save(ctx context.Context, route domain.Route) error {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.routes = append(f.routes, route)
	return nil
}

func (f *fakeRouteStore) ListAll(ctx context.Context) ([]domain.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Route(nil), f.routes...), nil
}

type fakeRenderer struct {
	err error
}

func (f fakeRenderer) RenderPath(points []domain.GeoPoint, m domain.Measurement) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(`{"distance":"` + m.Distance() + `"}`), nil
}

func (f fakeRenderer) RenderRoutes(routes []domain.Route) ([]byte, error) {
	return []byte(`{}`), f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.RouteSavedEvent
	err    error
}

func (f *fakePublisher) PublishRouteSaved(ctx context.Context, evt domain.RouteSavedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeKV struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newFakeKV() *fakeKV { return &fakeKV{values: map[string]string{}} }

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func (f *fakeKV) Update(ctx context.Context, key string, fn ports.UpdateFunc) error {
	return errors.New("not implemented")
}
