package orb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyAttack(t *testing.T) {
	var e EnergyEnvelope
	e.Ingest(0.5)

	// processed = 0.5 * gain, first tick moves 35% of the way there.
	want := 0.5 * EnergyGain * EnergyAttackRate
	e.Tick(time.Now())
	assert.InDelta(t, want, e.Smoothed(), 1e-9)
}

func TestEnergyDecay(t *testing.T) {
	var e EnergyEnvelope
	e.Ingest(1.0)
	e.Tick(time.Now())
	peak := e.Smoothed()
	require.Greater(t, peak, 0.0)

	e.Ingest(0.0)
	e.Tick(time.Now())
	assert.InDelta(t, peak*(1-EnergyDecayRate), e.Smoothed(), 1e-9)
}

func TestEnergyNoiseGate(t *testing.T) {
	var e EnergyEnvelope
	e.Ingest(1.0)
	e.Tick(time.Now())
	peak := e.Smoothed()

	// Below the gate the input counts as silence, so the envelope decays.
	e.Ingest(EnergyGate - 0.01)
	e.Tick(time.Now())
	assert.Less(t, e.Smoothed(), peak)
	assert.InDelta(t, peak*(1-EnergyDecayRate), e.Smoothed(), 1e-9)
}

func TestEnergyIngestClamps(t *testing.T) {
	var e EnergyEnvelope
	e.Ingest(4.2)
	assert.Equal(t, 1.0, e.Raw())
	e.Ingest(-3)
	assert.Equal(t, 0.0, e.Raw())
}

func TestEnergySmoothedBounded(t *testing.T) {
	var e EnergyEnvelope
	e.Ingest(1.0)
	for i := 0; i < 100; i++ {
		e.Tick(time.Now())
	}
	assert.LessOrEqual(t, e.Smoothed(), 1.0)
	assert.GreaterOrEqual(t, e.Smoothed(), 0.0)
}

func TestEnergyEaseOut(t *testing.T) {
	var e EnergyEnvelope
	e.Ingest(1.0)
	start := time.Now()
	e.Tick(start)
	peak := e.Smoothed()
	require.Greater(t, peak, 0.0)

	e.BeginEaseOut(start)
	assert.True(t, e.EasingOut())

	done := e.Tick(start.Add(EaseOutDuration / 2))
	assert.False(t, done)
	assert.InDelta(t, peak/2, e.Smoothed(), 1e-9)

	done = e.Tick(start.Add(EaseOutDuration))
	assert.True(t, done, "completion must signal exactly once")
	assert.Equal(t, 0.0, e.Smoothed())
	assert.False(t, e.EasingOut())

	done = e.Tick(start.Add(EaseOutDuration + TickInterval))
	assert.False(t, done)
}

func TestEnergyBeginEaseOutIdempotent(t *testing.T) {
	var e EnergyEnvelope
	start := time.Now()
	e.BeginEaseOut(start)
	// A later repeat must not rewind the window.
	e.BeginEaseOut(start.Add(400 * time.Millisecond))
	done := e.Tick(start.Add(EaseOutDuration))
	assert.True(t, done)
}

func TestEnergyResetCancelsEaseOut(t *testing.T) {
	var e EnergyEnvelope
	e.Ingest(0.9)
	e.Tick(time.Now())
	e.BeginEaseOut(time.Now())
	e.Reset()
	assert.False(t, e.EasingOut())
	assert.Equal(t, 0.0, e.Smoothed())
	assert.Equal(t, 0.0, e.Raw())
}

func TestEffectiveOutsideSpeaking(t *testing.T) {
	var e EnergyEnvelope
	e.Ingest(1.0)
	e.Tick(time.Now())
	assert.Equal(t, e.Smoothed(), e.Effective(StateThinking, 12.3))
	assert.Equal(t, e.Smoothed(), e.Effective(StateIdle, 0))
}

func TestEffectiveSpeakingWave(t *testing.T) {
	var e EnergyEnvelope

	// With no real signal the synthesized wave carries the orb, clamped to
	// its floor and ceiling.
	for now := 0.0; now < 10; now += 0.07 {
		v := e.Effective(StateSpeaking, now)
		assert.GreaterOrEqual(t, v, 0.3)
		assert.LessOrEqual(t, v, 1.0)
	}

	// Genuine loud amplitude dominates the wave.
	e.Ingest(1.0)
	for i := 0; i < 40; i++ {
		e.Tick(time.Now())
	}
	assert.GreaterOrEqual(t, e.Effective(StateSpeaking, 0), e.Smoothed())
}
