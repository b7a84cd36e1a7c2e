package services

import (
	"context"
	"errors"
	"fmt"
	"map-route-service/internal/domain"
	"map-route-service/internal/ports"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Display holds the formatted values shown next to the map.
type Display struct {
	Distance string
	Time     string
}

// SessionSnapshot is a consistent view of a session taken under one lock.
type SessionSnapshot struct {
	ID          uuid.UUID
	State       domain.DrawingState
	Saving      bool
	Points      []domain.GeoPoint
	Measurement domain.Measurement
	Display     Display
}

// RouteSession owns one map view's drawing interaction.
//
// State machine: idle -> drawing -> completed -> idle (save or clear),
// drawing -> idle (cancel). The measurement is recomputed on every change to
// the point sequence and read together with it, so distance and time are
// never out of step with each other or with the points.
//
// At most one save is outstanding per session. The store call runs without
// holding the lock; while it runs the session rejects cancel and a second save.
type RouteSession struct {
	mu sync.Mutex

	id          uuid.UUID
	state       domain.DrawingState
	points      []domain.GeoPoint
	measurement domain.Measurement
	overlay     []byte
	saving      bool

	estimator *Estimator
	store     ports.RouteStore
	renderer  ports.OverlayRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewRouteSession creates an idle session. renderer may be nil.
func NewRouteSession(
	store ports.RouteStore,
	estimator *Estimator,
	renderer ports.OverlayRenderer,
	logger *zap.Logger,
) *RouteSession {
	if estimator == nil {
		estimator = NewEstimator(DefaultWalkingSpeedKmh)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.New()
	return &RouteSession{
		id:        id,
		state:     domain.StateIdle,
		estimator: estimator,
		store:     store,
		renderer:  renderer,
		logger:    logger.With(zap.String("session_id", id.String())),
		now:       time.Now,
	}
}

func (s *RouteSession) ID() uuid.UUID { return s.id }

func (s *RouteSession) State() domain.DrawingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *RouteSession) Points() []domain.GeoPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.points)
}

func (s *RouteSession) Measurement() domain.Measurement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.measurement
}

// Display returns the formatted distance and time as one pair.
func (s *RouteSession) Display() Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return displayOf(s.measurement)
}

func (s *RouteSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{
		ID:          s.id,
		State:       s.state,
		Saving:      s.saving,
		Points:      slices.Clone(s.points),
		Measurement: s.measurement,
		Display:     displayOf(s.measurement),
	}
}

// Overlay returns the rendered overlay of the completed route, if any.
func (s *RouteSession) Overlay() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateCompleted || s.overlay == nil {
		return nil, false
	}
	return slices.Clone(s.overlay), true
}

// StartDrawing begins a new interaction with an empty path.
func (s *RouteSession) StartDrawing() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transitionLocked("start drawing", domain.StateDrawing); err != nil {
		return err
	}
	s.points = []domain.GeoPoint{}
	s.measurement = domain.Measurement{}
	s.overlay = nil

	s.logger.Debug("drawing started")
	return nil
}

// AppendPoint extends the path while drawing.
func (s *RouteSession) AppendPoint(p domain.GeoPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateDrawing {
		return fmt.Errorf("append point: %w: session is %s", domain.ErrInvalidStateTransition, s.state)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("append point: %w", err)
	}

	s.points = append(s.points, p)
	s.measurement = s.estimator.Estimate(s.points)
	return nil
}

// FinishDrawing completes the interaction.
//
// A nil finalPoints keeps the incrementally appended path; any non-nil slice,
// even an empty one, replaces it. Paths shorter than two points are accepted
// and measure zero. On an invalid point the session stays in drawing.
func (s *RouteSession) FinishDrawing(finalPoints []domain.GeoPoint) (domain.Measurement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanTransitionTo(domain.StateCompleted) {
		return domain.Measurement{}, fmt.Errorf("finish drawing: %w: session is %s", domain.ErrInvalidStateTransition, s.state)
	}

	path := s.points
	if finalPoints != nil {
		path = slices.Clone(finalPoints)
	}
	if err := domain.ValidatePath(path); err != nil {
		return domain.Measurement{}, fmt.Errorf("finish drawing: %w", err)
	}

	s.points = path
	s.measurement = s.estimator.Estimate(path)
	s.state = domain.StateCompleted
	s.overlay = s.renderLocked()

	s.logger.Info("drawing finished",
		zap.Int("points", len(path)),
		zap.Float64("distance_km", s.measurement.DistanceKm),
		zap.Int("time_min", s.measurement.EstimatedTimeMin),
	)
	return s.measurement, nil
}

// CancelDrawing discards the path from drawing or completed and returns to idle.
func (s *RouteSession) CancelDrawing() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saving {
		return fmt.Errorf("cancel drawing: %w", domain.ErrSaveInProgress)
	}
	if err := s.transitionLocked("cancel drawing", domain.StateIdle); err != nil {
		return err
	}
	s.resetLocked()

	s.logger.Debug("drawing cancelled")
	return nil
}

// ToggleDrawing starts drawing from idle and cancels it while drawing.
func (s *RouteSession) ToggleDrawing() (domain.DrawingState, error) {
	switch s.State() {
	case domain.StateIdle:
		if err := s.StartDrawing(); err != nil {
			return s.State(), err
		}
	case domain.StateDrawing:
		if err := s.CancelDrawing(); err != nil {
			return s.State(), err
		}
	default:
		return s.State(), fmt.Errorf("toggle drawing: %w: finish or clear the current route first", domain.ErrInvalidStateTransition)
	}
	return s.State(), nil
}

// ConfirmSave persists the completed route and returns the session to idle.
// If the store fails, the route is kept so the save can be retried.
func (s *RouteSession) ConfirmSave(ctx context.Context) (domain.Route, error) {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return domain.Route{}, fmt.Errorf("confirm save: %w", domain.ErrSaveInProgress)
	}
	if s.state != domain.StateCompleted {
		state := s.state
		s.mu.Unlock()
		return domain.Route{}, fmt.Errorf("confirm save: %w: session is %s", domain.ErrInvalidStateTransition, state)
	}
	if s.store == nil {
		s.mu.Unlock()
		return domain.Route{}, fmt.Errorf("confirm save: %w: no route store configured", domain.ErrStorageWrite)
	}

	route := domain.Route{
		Points:      slices.Clone(s.points),
		Measurement: s.measurement,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	s.saving = true
	s.mu.Unlock()

	err := s.store.Save(ctx, route)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		s.logger.Warn("route save failed", zap.Error(err))
		if errors.Is(err, domain.ErrStorageWrite) {
			return domain.Route{}, fmt.Errorf("confirm save: %w", err)
		}
		return domain.Route{}, fmt.Errorf("confirm save: %w: %w", domain.ErrStorageWrite, err)
	}

	s.state = domain.StateIdle
	s.resetLocked()

	s.logger.Info("route saved",
		zap.Int("points", len(route.Points)),
		zap.String("distance", route.Distance()),
	)
	return route, nil
}

func (s *RouteSession) transitionLocked(op string, target domain.DrawingState) error {
	if !s.state.CanTransitionTo(target) {
		return fmt.Errorf("%s: %w: %s -> %s", op, domain.ErrInvalidStateTransition, s.state, target)
	}
	s.state = target
	return nil
}

func (s *RouteSession) resetLocked() {
	s.points = nil
	s.measurement = domain.Measurement{}
	s.overlay = nil
}

// renderLocked asks the renderer for the route overlay. A failed render only
// loses the overlay; the measurement is still valid.
func (s *RouteSession) renderLocked() []byte {
	if s.renderer == nil {
		return nil
	}
	doc, err := s.renderer.RenderPath(s.points, s.measurement)
	if err != nil {
		s.logger.Warn("route overlay render failed", zap.Error(err))
		return nil
	}
	return doc
}

func displayOf(m domain.Measurement) Display {
	return Display{Distance: m.Distance(), Time: m.Time()}
}
