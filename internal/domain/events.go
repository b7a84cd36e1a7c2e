package domain

import (
	"time"

	"github.com/google/uuid"
)

const EventRouteSaved = "route.saved"

// RouteSavedEvent announces a route that has been durably persisted.
type RouteSavedEvent struct {
	ID         uuid.UUID   `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Route      RouteRecord `json:"route"`
}

func NewRouteSavedEvent(route Route, now time.Time) RouteSavedEvent {
	return RouteSavedEvent{
		ID:         uuid.New(),
		Type:       EventRouteSaved,
		OccurredAt: now.UTC(),
		Route:      route.Record(),
	}
}
