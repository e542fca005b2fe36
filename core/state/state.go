// Package state defines the rating flow state machine.
package state

import "fmt"

// Phase represents the screen the rating flow is on.
type Phase int

const (
	// PhaseSetup is the initial phase: criteria and folder are being chosen.
	PhaseSetup Phase = iota
	// PhaseEvaluating indicates images are being rated one by one.
	PhaseEvaluating
	// PhaseResults indicates rankings have been computed and are displayed.
	PhaseResults
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseEvaluating:
		return "Evaluating"
	case PhaseResults:
		return "Results"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// validTransitions defines the allowed phase transitions.
// Key is the current phase, value is a list of valid target phases.
var validTransitions = map[Phase][]Phase{
	PhaseSetup:      {PhaseEvaluating},
	PhaseEvaluating: {PhaseResults, PhaseSetup},
	PhaseResults:    {PhaseSetup},
}

// CanTransitionTo checks if transitioning from the current phase to the target phase is valid.
func (p Phase) CanTransitionTo(target Phase) bool {
	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the list of valid target phases from the current phase.
func (p Phase) ValidTransitions() []Phase {
	return validTransitions[p]
}

// CanEditSetup returns true if criteria and folder may still change.
func (p Phase) CanEditSetup() bool {
	return p == PhaseSetup
}

// CanRate returns true if ratings may be mutated in this phase.
func (p Phase) CanRate() bool {
	return p == PhaseEvaluating
}

// HasResults returns true if rankings are available.
func (p Phase) HasResults() bool {
	return p == PhaseResults
}

// TransitionError represents an invalid phase transition attempt.
type TransitionError struct {
	From   Phase
	To     Phase
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid phase transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid phase transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to Phase, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
