package services

import (
	"context"
	"fmt"
	"map-route-service/internal/domain"
	"sync"
	"time"

	"github.com/google/uuid"
)

type registryEntry struct {
	session  *RouteSession
	lastSeen time.Time
}

// SessionRegistry tracks the live route session of every open map view.
// A session is created when a view opens and dropped when it closes, or
// when it sits idle longer than the sweep TTL.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*registryEntry
	factory  func() *RouteSession
	now      func() time.Time
}

func NewSessionRegistry(factory func() *RouteSession) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*registryEntry),
		factory:  factory,
		now:      time.Now,
	}
}

func (r *SessionRegistry) Create() *RouteSession {
	s := r.factory()

	r.mu.Lock()
	r.sessions[s.ID()] = &registryEntry{session: s, lastSeen: r.now()}
	r.mu.Unlock()

	return s
}

// Get returns the session and marks it as recently used.
func (r *SessionRegistry) Get(id uuid.UUID) (*RouteSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get session %s: %w", id, domain.ErrSessionNotFound)
	}
	e.lastSeen = r.now()
	return e.session, nil
}

// Close tears the session down. An outstanding save still completes against the store.
func (r *SessionRegistry) Close(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("close session %s: %w", id, domain.ErrSessionNotFound)
	}
	delete(r.sessions, id)
	return nil
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions unused for longer than ttl and returns how many went.
// Sessions with a save in flight are kept until the save finishes.
func (r *SessionRegistry) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.After(cutoff) || e.session.Snapshot().Saving {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done. onSweep, if set,
// receives the count of each sweep that removed something.
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval, ttl time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ttl); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
