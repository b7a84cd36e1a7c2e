package services

import (
	"context"
	"map-route-service/internal/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistryLifecycle(t *testing.T) {
	store := &fakeRouteStore{}
	reg := NewSessionRegistry(func() *RouteSession {
		return NewRouteSession(store, nil, nil, nil)
	})

	a := reg.Create()
	b := reg.Create()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, reg.Len())

	got, err := reg.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)

	require.NoError(t, a.StartDrawing())
	assert.Equal(t, domain.StateIdle, b.State())

	require.NoError(t, reg.Close(a.ID()))
	assert.Equal(t, 1, reg.Len())

	_, err = reg.Get(a.ID())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.ErrorIs(t, reg.Close(a.ID()), domain.ErrSessionNotFound)
	require.ErrorIs(t, reg.Close(uuid.New()), domain.ErrSessionNotFound)
}

func TestSessionRegistrySweepDropsIdleSessions(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	reg := NewSessionRegistry(func() *RouteSession {
		return NewRouteSession(&fakeRouteStore{}, nil, nil, nil)
	})
	reg.now = func() time.Time { return now }

	idle := reg.Create()
	active := reg.Create()

	now = now.Add(20 * time.Minute)
	_, err := reg.Get(active.ID())
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	assert.Equal(t, 1, reg.Len())

	_, err = reg.Get(idle.ID())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = reg.Get(active.ID())
	require.NoError(t, err)
}

func TestSessionRegistrySweepKeepsSavingSession(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeRouteStore{entered: make(chan struct{}), release: make(chan struct{})}
	reg := NewSessionRegistry(func() *RouteSession {
		return NewRouteSession(store, nil, nil, nil)
	})
	reg.now = func() time.Time { return now }

	s := reg.Create()
	require.NoError(t, s.StartDrawing())
	_, err := s.FinishDrawing(equatorPath)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.ConfirmSave(context.Background())
		done <- err
	}()
	<-store.entered

	now = now.Add(time.Hour)
	assert.Equal(t, 0, reg.Sweep(30*time.Minute))

	close(store.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	assert.Equal(t, 0, reg.Len())
}
