package orb

import (
	"fmt"
	"sync"
	"time"
)

// Settings is the one-time startup snapshot from the host's settings store.
// Zero values mean "keep the engine default". The engine never persists
// settings itself.
type Settings struct {
	ColorPreset    string
	OrbStyle       string
	AnimationSpeed float64
	ParticleCount  int
}

// SettingsProvider is consumed exactly once, at engine construction.
type SettingsProvider interface {
	OrbSettings() (Settings, error)
}

// Options configure a new Engine. All fields are optional.
type Options struct {
	Seed     uint64 // field generation seed; 0 means seed from the clock
	Settings SettingsProvider
	Sink     FrameSink
	Observer StateObserver
}

// Engine is the living-state orb: a field of particles orbiting a center
// point, driven by a fixed-cadence scheduler and modulated by the current
// cognitive state and speech energy. All public numeric setters clamp
// silently — this is a continuously driven visual system and malformed
// input degrades to the nearest valid value instead of failing.
type Engine struct {
	mu sync.Mutex

	controller StateController
	envelope   EnergyEnvelope
	field      *ParticleField
	fades      ColorTransitionManager

	colors Colors
	style  string

	speed     float64
	count     int
	showLabel bool

	convergence       float64
	targetConvergence float64
	orbitMul          float64
	targetOrbit       float64
	glowOpacity       float64
	glowTarget        float64
	clock             float64 // animation time, quadratic speed scaled

	sink     FrameSink
	observer StateObserver

	running    bool
	stop       chan struct{}
	energyStop chan struct{}
}

func New(opts Options) (*Engine, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	e := &Engine{
		field:       NewParticleField(seed),
		colors:      PresetAurora.Colors(),
		style:       StyleGlow,
		speed:       1.0,
		count:       DefaultParticles,
		orbitMul:    1.0,
		targetOrbit: 1.0,
		sink:        opts.Sink,
		observer:    opts.Observer,
	}
	if opts.Settings != nil {
		s, err := opts.Settings.OrbSettings()
		if err != nil {
			return nil, fmt.Errorf("orb settings: %w", err)
		}
		e.applySettings(s)
	}
	if err := e.field.CreateField(e.count, e.colors); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) applySettings(s Settings) {
	if p, ok := PresetByName(s.ColorPreset); ok {
		e.colors = p.Colors()
	}
	if s.OrbStyle == StyleSolid || s.OrbStyle == StyleGlow {
		e.style = s.OrbStyle
	}
	if s.AnimationSpeed != 0 {
		e.speed = clampF(s.AnimationSpeed, SpeedMin, SpeedMax)
	}
	if s.ParticleCount != 0 {
		e.count = clampI(s.ParticleCount, MinParticles, MaxParticles)
	}
}

// Start launches the animation loop. The energy loop starts and stops with
// the Speaking state.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.stop = make(chan struct{})
	go e.animLoop(e.stop)
	if e.controller.State() == StateSpeaking {
		e.startEnergyLoopLocked()
	}
}

func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	close(e.stop)
	e.stopEnergyLoopLocked()
}

func (e *Engine) State() VisualState { return e.controller.State() }

// SetState moves the orb to a new cognitive state. Targets are assigned
// idempotently; transitions take effect before the next scheduled tick reads
// them. The observer fires only on an actual change.
func (e *Engine) SetState(s VisualState) {
	if s < StateIdle || s > StateSpeaking {
		return
	}
	e.mu.Lock()
	changed := e.setStateLocked(s)
	obs := e.observer
	e.mu.Unlock()
	if changed && obs != nil {
		obs(s)
	}
}

func (e *Engine) setStateLocked(s VisualState) bool {
	prev := e.controller.State()
	t := s.Targets()

	e.targetConvergence = t.Convergence
	e.targetOrbit = t.OrbitSpeed
	e.glowTarget = 0
	if t.Glow {
		e.glowTarget = GlowOpacityOn
	}

	// Flip color mode per particle; each one whose mode differs fades to the
	// new palette slot over the fixed transition duration.
	e.field.SetMode(t.Mode)
	for i := range e.field.P {
		p := &e.field.P[i]
		if p.Mode == t.Mode {
			continue
		}
		p.Mode = t.Mode
		e.fades.Queue(i, p.Col, e.colors.ModeColor(t.Mode, p.Mix))
	}

	if s == StateIdle {
		e.envelope.Reset()
	}
	// Entering Speaking keeps smoothedEnergy: a Listening→Speaking→Listening
	// round trip must not pop the field back to zero.

	e.controller.set(s)

	if e.running && s == StateSpeaking && prev != StateSpeaking {
		e.startEnergyLoopLocked()
	}
	if prev == StateSpeaking && s != StateSpeaking {
		e.stopEnergyLoopLocked()
	}
	return prev != s
}

func (e *Engine) startEnergyLoopLocked() {
	stop := make(chan struct{})
	e.energyStop = stop
	go e.energyLoop(stop)
}

func (e *Engine) stopEnergyLoopLocked() {
	if e.energyStop != nil {
		close(e.energyStop)
		e.energyStop = nil
	}
}

func (e *Engine) SetIdle()      { e.SetState(StateIdle) }
func (e *Engine) SetListening() { e.SetState(StateListening) }
func (e *Engine) SetThinking()  { e.SetState(StateThinking) }
func (e *Engine) SetSpeaking()  { e.SetState(StateSpeaking) }

// CycleState advances Idle→Listening→Thinking→Speaking→Idle.
func (e *Engine) CycleState() {
	e.SetState(e.controller.State().Next())
}

// UpdateSpeakingEnergy ingests a speech amplitude sample, clamped to [0,1].
// Safe from any goroutine (audio playback or TTS callbacks): the value is a
// single atomic write, consumed once per energy tick. Samples arriving
// outside Speaking are discarded, never buffered.
func (e *Engine) UpdateSpeakingEnergy(amplitude float64) {
	if e.controller.State() != StateSpeaking {
		return
	}
	e.envelope.Ingest(amplitude)
}

// EndSpeaking begins the ease-out: energy decays to zero over a fixed
// window, then the engine fires exactly one automatic transition to Idle.
// A no-op outside Speaking.
func (e *Engine) EndSpeaking() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.controller.State() != StateSpeaking {
		return
	}
	e.envelope.BeginEaseOut(time.Now())
}

func (e *Engine) SetShowStateLabel(show bool) {
	e.mu.Lock()
	e.showLabel = show
	e.mu.Unlock()
}

func (e *Engine) ShowStateLabel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.showLabel
}

func (e *Engine) SetAnimationSpeed(speed float64) {
	speed = clampF(speed, SpeedMin, SpeedMax)
	e.mu.Lock()
	e.speed = speed
	e.mu.Unlock()
}

func (e *Engine) AnimationSpeed() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// SetParticleCount clamps to the valid range and recreates the field when
// the count actually changes.
func (e *Engine) SetParticleCount(count int) {
	count = clampI(count, MinParticles, MaxParticles)
	e.mu.Lock()
	defer e.mu.Unlock()
	if count == e.count {
		return
	}
	e.count = count
	_ = e.recreateLocked(count) // clamped count cannot fail
}

func (e *Engine) ParticleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}

// RecreateParticles rebuilds the field even at an unchanged count. Failures
// surface here, to the explicit caller; nothing is retried.
func (e *Engine) RecreateParticles(count int) error {
	count = clampI(count, MinParticles, MaxParticles)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.count = count
	return e.recreateLocked(count)
}

func (e *Engine) recreateLocked(count int) error {
	e.fades.Clear()
	if err := e.field.RecreateField(count, e.colors); err != nil {
		return fmt.Errorf("recreate particles: %w", err)
	}
	return nil
}

func (e *Engine) SetPrimaryColor(c RGB) {
	e.mu.Lock()
	e.colors.Primary = c
	e.field.ApplyColors(e.colors, &e.fades)
	e.mu.Unlock()
}

func (e *Engine) SetSecondaryColor(c RGB) {
	e.mu.Lock()
	e.colors.Secondary = c
	e.field.ApplyColors(e.colors, &e.fades)
	e.mu.Unlock()
}

func (e *Engine) SetThinkingColor(c RGB) {
	e.mu.Lock()
	e.colors.Thinking = c
	e.field.ApplyColors(e.colors, &e.fades)
	e.mu.Unlock()
}

// ApplyColorPreset swaps the whole palette to a named preset. Unknown names
// are ignored.
func (e *Engine) ApplyColorPreset(name string) {
	p, ok := PresetByName(name)
	if !ok {
		return
	}
	e.mu.Lock()
	e.colors = p.Colors()
	e.field.ApplyColors(e.colors, &e.fades)
	e.mu.Unlock()
}

// UpdateParticleColors re-applies the current palette to every particle not
// mid-transition.
func (e *Engine) UpdateParticleColors() {
	e.mu.Lock()
	e.field.ApplyColors(e.colors, &e.fades)
	e.mu.Unlock()
}

func (e *Engine) Palette() Colors {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.colors
}

func (e *Engine) Style() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style
}
