package orb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSettings struct {
	s   Settings
	err error
}

func (p staticSettings) OrbSettings() (Settings, error) { return p.s, p.err }

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	e, err := New(opts)
	require.NoError(t, err)
	return e
}

func TestNewDefaults(t *testing.T) {
	e := newTestEngine(t, Options{})
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, DefaultParticles, e.ParticleCount())
	assert.Equal(t, 1.0, e.AnimationSpeed())
	assert.Equal(t, StyleGlow, e.Style())
	assert.Equal(t, PresetAurora.Colors(), e.Palette())
	assert.False(t, e.ShowStateLabel())
	assert.Len(t, e.field.P, DefaultParticles)
}

func TestNewAppliesSettings(t *testing.T) {
	e := newTestEngine(t, Options{Settings: staticSettings{s: Settings{
		ColorPreset:    "ember",
		OrbStyle:       StyleSolid,
		AnimationSpeed: 2.0,
		ParticleCount:  200,
	}}})
	assert.Equal(t, PresetEmber.Colors(), e.Palette())
	assert.Equal(t, StyleSolid, e.Style())
	assert.Equal(t, 2.0, e.AnimationSpeed())
	assert.Equal(t, 200, e.ParticleCount())
	assert.Len(t, e.field.P, 200)
}

func TestNewClampsSettings(t *testing.T) {
	e := newTestEngine(t, Options{Settings: staticSettings{s: Settings{
		ColorPreset:    "no-such-preset",
		OrbStyle:       "wireframe",
		AnimationSpeed: 99,
		ParticleCount:  5,
	}}})
	assert.Equal(t, PresetAurora.Colors(), e.Palette(), "unknown preset keeps the default")
	assert.Equal(t, StyleGlow, e.Style(), "unknown style keeps the default")
	assert.Equal(t, SpeedMax, e.AnimationSpeed())
	assert.Equal(t, MinParticles, e.ParticleCount())
}

func TestNewSettingsError(t *testing.T) {
	_, err := New(Options{Settings: staticSettings{err: errors.New("store offline")}})
	require.Error(t, err)
}

func TestSetStateAssignsTargets(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetThinking()
	assert.Equal(t, StateThinking, e.State())
	assert.Equal(t, 0.85, e.targetConvergence)
	assert.Equal(t, 3.0, e.targetOrbit)

	e.SetSpeaking()
	assert.Equal(t, 0.2, e.targetConvergence)
	assert.Equal(t, 1.3, e.targetOrbit)
	assert.Equal(t, GlowOpacityOn, e.glowTarget)

	e.SetIdle()
	assert.Equal(t, 0.0, e.glowTarget)
}

func TestSetStateInvalidIgnored(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetListening()
	e.SetState(VisualState(7))
	e.SetState(VisualState(-1))
	assert.Equal(t, StateListening, e.State())
}

func TestCycleState(t *testing.T) {
	e := newTestEngine(t, Options{})
	want := []VisualState{StateListening, StateThinking, StateSpeaking, StateIdle}
	for _, s := range want {
		e.CycleState()
		assert.Equal(t, s, e.State())
	}
}

func TestObserverFiresOnChangeOnly(t *testing.T) {
	var got []VisualState
	e := newTestEngine(t, Options{Observer: func(s VisualState) { got = append(got, s) }})

	e.SetThinking()
	e.SetThinking()
	e.SetListening()
	assert.Equal(t, []VisualState{StateThinking, StateListening}, got)
}

func TestStateChangeQueuesModeFades(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetThinking()

	assert.Equal(t, ColorAlternate, e.field.Mode())
	for i := range e.field.P {
		assert.Equal(t, ColorAlternate, e.field.P[i].Mode)
		assert.True(t, e.fades.Active(i), "particle %d should be fading to thinking color", i)
	}

	// Same state again: modes already match, nothing new queued.
	before := len(e.fades.pending)
	e.SetThinking()
	assert.Equal(t, before, len(e.fades.pending))
}

func TestUpdateSpeakingEnergyGatedByState(t *testing.T) {
	e := newTestEngine(t, Options{})

	e.UpdateSpeakingEnergy(0.9)
	assert.Equal(t, 0.0, e.envelope.Raw(), "samples outside Speaking are discarded")

	e.SetSpeaking()
	e.UpdateSpeakingEnergy(0.9)
	assert.Equal(t, 0.9, e.envelope.Raw())
}

func TestIdleResetsEnvelope(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetSpeaking()
	e.UpdateSpeakingEnergy(1.0)
	e.stepEnergy(time.Now())
	require.Greater(t, e.envelope.Smoothed(), 0.0)

	e.SetIdle()
	assert.Equal(t, 0.0, e.envelope.Smoothed())
	assert.Equal(t, 0.0, e.envelope.Raw())
}

func TestSpeakingKeepsSmoothedEnergy(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetSpeaking()
	e.UpdateSpeakingEnergy(1.0)
	e.stepEnergy(time.Now())
	carried := e.envelope.Smoothed()
	require.Greater(t, carried, 0.0)

	e.SetListening()
	e.SetSpeaking()
	assert.Equal(t, carried, e.envelope.Smoothed(), "round trip must not zero the field")
}

func TestEndSpeakingOutsideSpeakingNoop(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.EndSpeaking()
	assert.False(t, e.envelope.EasingOut())
}

func TestSetAnimationSpeedClamps(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetAnimationSpeed(0.0)
	assert.Equal(t, SpeedMin, e.AnimationSpeed())
	e.SetAnimationSpeed(50)
	assert.Equal(t, SpeedMax, e.AnimationSpeed())
	e.SetAnimationSpeed(1.7)
	assert.Equal(t, 1.7, e.AnimationSpeed())
}

func TestSetParticleCountClampsAndRecreates(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetParticleCount(10)
	assert.Equal(t, MinParticles, e.ParticleCount())
	assert.Len(t, e.field.P, MinParticles)

	e.SetParticleCount(1000)
	assert.Equal(t, MaxParticles, e.ParticleCount())
	assert.Len(t, e.field.P, MaxParticles)
}

func TestRecreateParticlesClearsFades(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetThinking()
	require.True(t, e.fades.Active(0))

	require.NoError(t, e.RecreateParticles(80))
	assert.Len(t, e.field.P, 80)
	assert.False(t, e.fades.Active(0), "stale fade indices must not bleed into the new field")
	assert.Equal(t, ColorAlternate, e.field.Mode(), "mode survives recreation")
}

func TestApplyColorPreset(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.ApplyColorPreset("ocean")
	assert.Equal(t, PresetOcean.Colors(), e.Palette())
	want := PresetOcean.Colors().ModeColor(e.field.P[0].Mode, e.field.P[0].Mix)
	assert.Equal(t, want, e.field.P[0].Col)

	e.ApplyColorPreset("bogus")
	assert.Equal(t, PresetOcean.Colors(), e.Palette(), "unknown preset is ignored")
}

func TestSetPrimaryColorRepaints(t *testing.T) {
	e := newTestEngine(t, Options{})
	c := RGB{R: 10, G: 200, B: 30}
	e.SetPrimaryColor(c)
	assert.Equal(t, c, e.Palette().Primary)
	want := e.Palette().ModeColor(e.field.P[0].Mode, e.field.P[0].Mix)
	assert.Equal(t, want, e.field.P[0].Col)
}

func TestShowStateLabelToggle(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.SetShowStateLabel(true)
	assert.True(t, e.ShowStateLabel())
	e.SetShowStateLabel(false)
	assert.False(t, e.ShowStateLabel())
}

func TestStartStop(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.Start()
	e.Start() // repeat is a no-op
	e.Stop()
	e.Stop()
}
