package domain

import "fmt"

// DrawingState is the lifecycle position of a route session.
type DrawingState string

const (
	StateIdle      DrawingState = "idle"
	StateDrawing   DrawingState = "drawing"
	StateCompleted DrawingState = "completed"
)

// validTransitions defines the drawing state machine.
// Save and clear both leave Completed for Idle.
var validTransitions = map[DrawingState][]DrawingState{
	StateIdle:      {StateDrawing},
	StateDrawing:   {StateCompleted, StateIdle},
	StateCompleted: {StateIdle},
}

func (s DrawingState) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this state to the target is allowed.
func (s DrawingState) CanTransitionTo(target DrawingState) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s DrawingState) String() string {
	return string(s)
}

// ParseDrawingState converts a string to a DrawingState, returning an error if invalid.
func ParseDrawingState(s string) (DrawingState, error) {
	state := DrawingState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid drawing state: %s", s)
	}
	return state, nil
}
