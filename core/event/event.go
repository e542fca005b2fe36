// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by the presentation layer.
package event

import "photorank/core/state"

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// PhaseChanged is published when the flow moves between screens.
type PhaseChanged struct {
	OldPhase state.Phase
	NewPhase state.Phase
}

func NewPhaseChanged(oldPhase, newPhase state.Phase) *PhaseChanged {
	return &PhaseChanged{OldPhase: oldPhase, NewPhase: newPhase}
}

func (e *PhaseChanged) EventName() string {
	return "PhaseChanged"
}

// OperationFailed is published when a command fails.
type OperationFailed struct {
	Operation string
	Error     error
}

func NewOperationFailed(operation string, err error) *OperationFailed {
	return &OperationFailed{Operation: operation, Error: err}
}

func (e *OperationFailed) EventName() string {
	return "OperationFailed"
}
