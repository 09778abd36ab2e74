package orb

import "sync/atomic"

// VisualState is the assistant's cognitive state as rendered by the orb.
type VisualState int32

const (
	StateIdle VisualState = iota
	StateListening
	StateThinking
	StateSpeaking
)

func (s VisualState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateListening:
		return "Listening"
	case StateThinking:
		return "Thinking"
	case StateSpeaking:
		return "Speaking"
	}
	return "Unknown"
}

// Next advances the Idle→Listening→Thinking→Speaking→Idle ring.
func (s VisualState) Next() VisualState {
	return (s + 1) % 4
}

// StateTargets are the parameters a state eases the animation toward.
type StateTargets struct {
	Convergence float64
	OrbitSpeed  float64
	Mode        ColorMode
	Glow        bool
}

var stateTargets = [4]StateTargets{
	StateIdle:      {Convergence: 0.0, OrbitSpeed: 1.0, Mode: ColorPrimary, Glow: false},
	StateListening: {Convergence: 0.3, OrbitSpeed: 0.6, Mode: ColorPrimary, Glow: false},
	StateThinking:  {Convergence: 0.85, OrbitSpeed: 3.0, Mode: ColorAlternate, Glow: false},
	StateSpeaking:  {Convergence: 0.2, OrbitSpeed: 1.3, Mode: ColorPrimary, Glow: true},
}

// Targets returns the parameter set for s. Always the same values for the
// same state, so repeated SetState calls are idempotent.
func (s VisualState) Targets() StateTargets {
	if s < StateIdle || s > StateSpeaking {
		return stateTargets[StateIdle]
	}
	return stateTargets[s]
}

// StateController holds the current state behind an atomic so the amplitude
// ingestion path can gate on it without taking the engine lock.
type StateController struct {
	state atomic.Int32
}

func (c *StateController) State() VisualState {
	return VisualState(c.state.Load())
}

func (c *StateController) set(s VisualState) {
	c.state.Store(int32(s))
}
