package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseSetup, "Setup"},
		{PhaseEvaluating, "Evaluating"},
		{PhaseResults, "Results"},
		{Phase(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestPhase_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     Phase
		to       Phase
		expected bool
	}{
		{"Setup -> Evaluating", PhaseSetup, PhaseEvaluating, true},
		{"Setup -> Results (invalid)", PhaseSetup, PhaseResults, false},
		{"Setup -> Setup (invalid)", PhaseSetup, PhaseSetup, false},

		{"Evaluating -> Results", PhaseEvaluating, PhaseResults, true},
		{"Evaluating -> Setup", PhaseEvaluating, PhaseSetup, true},
		{"Evaluating -> Evaluating (invalid)", PhaseEvaluating, PhaseEvaluating, false},

		{"Results -> Setup", PhaseResults, PhaseSetup, true},
		{"Results -> Evaluating (invalid)", PhaseResults, PhaseEvaluating, false},

		{"Unknown -> Setup (invalid)", Phase(9), PhaseSetup, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPhase_Capabilities(t *testing.T) {
	tests := []struct {
		phase      Phase
		editSetup  bool
		rate       bool
		hasResults bool
	}{
		{PhaseSetup, true, false, false},
		{PhaseEvaluating, false, true, false},
		{PhaseResults, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.Equal(t, tt.editSetup, tt.phase.CanEditSetup(), "CanEditSetup")
			assert.Equal(t, tt.rate, tt.phase.CanRate(), "CanRate")
			assert.Equal(t, tt.hasResults, tt.phase.HasResults(), "HasResults")
		})
	}
}

func TestPhase_ValidTransitions(t *testing.T) {
	assert.Len(t, PhaseEvaluating.ValidTransitions(), 2)
	assert.Nil(t, Phase(9).ValidTransitions())
}

func TestTransitionError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TransitionError
		expected string
	}{
		{
			"with reason",
			NewTransitionError(PhaseSetup, PhaseResults, "not allowed"),
			"invalid phase transition from Setup to Results: not allowed",
		},
		{
			"without reason",
			NewTransitionError(PhaseResults, PhaseEvaluating, ""),
			"invalid phase transition from Results to Evaluating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.expected)
		})
	}
}
