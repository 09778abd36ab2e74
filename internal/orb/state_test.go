package orb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateTargets(t *testing.T) {
	cases := []struct {
		state VisualState
		want  StateTargets
	}{
		{StateIdle, StateTargets{Convergence: 0.0, OrbitSpeed: 1.0, Mode: ColorPrimary, Glow: false}},
		{StateListening, StateTargets{Convergence: 0.3, OrbitSpeed: 0.6, Mode: ColorPrimary, Glow: false}},
		{StateThinking, StateTargets{Convergence: 0.85, OrbitSpeed: 3.0, Mode: ColorAlternate, Glow: false}},
		{StateSpeaking, StateTargets{Convergence: 0.2, OrbitSpeed: 1.3, Mode: ColorPrimary, Glow: true}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.state.Targets(), tc.state.String())
	}
}

func TestStateTargetsOutOfRange(t *testing.T) {
	assert.Equal(t, StateIdle.Targets(), VisualState(-1).Targets())
	assert.Equal(t, StateIdle.Targets(), VisualState(99).Targets())
}

func TestStateNextCycles(t *testing.T) {
	s := StateIdle
	order := []VisualState{StateListening, StateThinking, StateSpeaking, StateIdle}
	for _, want := range order {
		s = s.Next()
		assert.Equal(t, want, s)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Listening", StateListening.String())
	assert.Equal(t, "Thinking", StateThinking.String())
	assert.Equal(t, "Speaking", StateSpeaking.String())
	assert.Equal(t, "Unknown", VisualState(42).String())
}
