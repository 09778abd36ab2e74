package orb

import (
	"math"
	"sync/atomic"
	"time"
)

// EnergyEnvelope turns raw speech amplitude into the smooth modulation value
// the field breathes with. Raw amplitude arrives from an audio or TTS
// callback on another goroutine; it is handed off as a single atomic scalar
// and consumed once per energy tick — no locks on the ingestion path.
type EnergyEnvelope struct {
	raw atomic.Uint64 // float64 bits

	smoothed  float64
	easing    bool
	easeStart time.Time
}

// Ingest stores a clamped raw amplitude. Gating by current state happens at
// the engine's ingestion call site, so a late delivery after leaving
// Speaking is discarded rather than buffered.
func (e *EnergyEnvelope) Ingest(v float64) {
	e.raw.Store(math.Float64bits(clampF(v, 0, 1)))
}

func (e *EnergyEnvelope) Raw() float64 {
	return math.Float64frombits(e.raw.Load())
}

func (e *EnergyEnvelope) Smoothed() float64 { return e.smoothed }

// Reset zeroes both raw and smoothed energy and cancels any ease-out.
func (e *EnergyEnvelope) Reset() {
	e.raw.Store(0)
	e.smoothed = 0
	e.easing = false
}

// BeginEaseOut starts the time-boxed decay to zero. Repeat calls while
// already easing are ignored so the completion signal stays one-shot.
func (e *EnergyEnvelope) BeginEaseOut(now time.Time) {
	if e.easing {
		return
	}
	e.easing = true
	e.easeStart = now
}

func (e *EnergyEnvelope) EasingOut() bool { return e.easing }

// Tick advances the envelope one step. Returns true exactly once, when an
// ease-out completes — the caller's signal to auto-transition to Idle.
func (e *EnergyEnvelope) Tick(now time.Time) bool {
	if e.easing {
		progress := clampF(now.Sub(e.easeStart).Seconds()/EaseOutDuration.Seconds(), 0, 1)
		e.smoothed *= 1 - progress
		if progress >= 1 {
			e.easing = false
			e.smoothed = 0
			return true
		}
		return false
	}

	processed := 0.0
	if raw := e.Raw(); raw >= EnergyGate {
		processed = math.Min(1, raw*EnergyGain)
	}
	rate := EnergyDecayRate
	if processed > e.smoothed {
		rate = EnergyAttackRate
	}
	e.smoothed = clampF(e.smoothed+(processed-e.smoothed)*rate, 0, 1)
	return false
}

// Effective is the per-tick modulation value. Outside Speaking it is just
// the smoothed amplitude. During Speaking a synthesized multi-sine wave
// provides an organic floor so the orb visibly "speaks" even with no real
// audio signal, while genuine amplitude dominates when louder.
func (e *EnergyEnvelope) Effective(state VisualState, now float64) float64 {
	if state != StateSpeaking {
		return e.smoothed
	}
	wave := 0.6 + 0.25*math.Sin(3*now) + 0.15*math.Sin(7*now) + 0.1*math.Sin(13*now)
	return math.Max(e.smoothed, clampF(wave, 0.3, 1.0))
}
