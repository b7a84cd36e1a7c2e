package domain

import "errors"

var (
	// ErrInvalidStateTransition is returned when a drawing operation is not allowed in the current state.
	ErrInvalidStateTransition = errors.New("invalid drawing state transition")

	// ErrInvalidRoute is returned when a finished path contains unusable points.
	ErrInvalidRoute = errors.New("invalid route")

	// ErrInvalidCoordinates is returned for latitude/longitude outside their ranges.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrSaveInProgress is returned when a session already has a save outstanding.
	ErrSaveInProgress = errors.New("route save already in progress")

	// ErrStorageWrite wraps any failure of the storage medium to persist a route.
	ErrStorageWrite = errors.New("route storage write failed")

	// ErrStorageFull is returned by a storage medium whose quota would be exceeded by a write.
	ErrStorageFull = errors.New("storage quota exceeded")

	// ErrSessionNotFound is returned for unknown or closed route sessions.
	ErrSessionNotFound = errors.New("route session not found")

	// ErrInvalidPreferences is returned when display preferences fail validation.
	ErrInvalidPreferences = errors.New("invalid preferences")
)
