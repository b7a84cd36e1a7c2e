package handlers

import (
	"fmt"
	"map-route-service/internal/api/dto"
	"map-route-service/internal/domain"
	"map-route-service/internal/services"
	"net/http"

	"github.com/google/uuid"
)

type SessionHandler struct {
	Registry *services.SessionRegistry
}

// Create opens a session for a new map view.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.Registry.Create()
	writeJSON(w, r, http.StatusCreated, toSessionResponse(s.Snapshot()))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(s.Snapshot()))
}

// Close tears the view's session down.
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid session id")
		return
	}
	if err := h.Registry.Close(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(s *services.RouteSession) error { return s.StartDrawing() })
}

func (h *SessionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(s *services.RouteSession) error {
		_, err := s.ToggleDrawing()
		return err
	})
}

func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(s *services.RouteSession) error { return s.CancelDrawing() })
}

// AppendPoints adds one point or a batch while drawing. A batch stops at the
// first invalid point; points before it are kept.
func (h *SessionHandler) AppendPoints(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.AppendPointsRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	pairs := req.Points
	if req.Point != nil {
		pairs = append([][]float64{req.Point}, pairs...)
	}
	if len(pairs) == 0 {
		writeError(w, r, http.StatusBadRequest, "point or points is required")
		return
	}

	for i, pair := range pairs {
		p, err := domain.GeoPointFromList(pair)
		if err != nil {
			writeServiceError(w, r, fmt.Errorf("point %d: %w", i, err))
			return
		}
		if err := s.AppendPoint(p); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, toSessionResponse(s.Snapshot()))
}

// Finish completes drawing, optionally with the final path in the body.
func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.FinishRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	var final []domain.GeoPoint
	if req.Points != nil {
		final = make([]domain.GeoPoint, 0, len(req.Points))
		for i, pair := range req.Points {
			if len(pair) != 2 {
				writeServiceError(w, r, fmt.Errorf("%w: point %d: expected [lat, lng]", domain.ErrInvalidRoute, i))
				return
			}
			final = append(final, domain.GeoPoint{Lat: pair[0], Lng: pair[1]})
		}
	}

	if _, err := s.FinishDrawing(final); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(s.Snapshot()))
}

// Save persists the completed route and returns its record.
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	route, err := s.ConfirmSave(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toRouteResponse(route))
}

// Overlay serves the completed route as GeoJSON.
func (h *SessionHandler) Overlay(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	doc, ok := s.Overlay()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no completed route to render")
		return
	}
	writeRaw(w, http.StatusOK, "application/geo+json", doc)
}

func (h *SessionHandler) act(w http.ResponseWriter, r *http.Request, fn func(*services.RouteSession) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := fn(s); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(s.Snapshot()))
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.RouteSession, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid session id")
		return nil, false
	}
	s, err := h.Registry.Get(id)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	return s, true
}

func toSessionResponse(snap services.SessionSnapshot) dto.SessionResponse {
	points := make([][]float64, 0, len(snap.Points))
	for _, p := range snap.Points {
		points = append(points, p.CoordsToList())
	}
	return dto.SessionResponse{
		ID:               snap.ID.String(),
		State:            snap.State.String(),
		Saving:           snap.Saving,
		Points:           points,
		Distance:         snap.Display.Distance,
		Time:             snap.Display.Time,
		DistanceKm:       snap.Measurement.DistanceKm,
		EstimatedTimeMin: snap.Measurement.EstimatedTimeMin,
	}
}
