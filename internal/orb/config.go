package orb

import "time"

// Animation cadence. Both loops tick at ~30Hz; the easing coefficients below
// are per-tick amounts tuned to this cadence, so they stay tick-based rather
// than wall-clock based.
const (
	TickInterval = 33 * time.Millisecond

	ConvergenceRate = 0.008 // per tick toward the state's convergence target
	OrbitSpeedRate  = 0.012 // per tick toward the state's orbit multiplier
	TimeStep        = 0.012 // per tick, scaled by animationSpeed squared
)

// Particle attribute ranges.
const (
	MinParticles     = 50
	MaxParticles     = 300
	DefaultParticles = 150

	OrbitRadiusMin = 20.0
	OrbitRadiusMax = 90.0
	OrbitSpeedMin  = 0.005
	OrbitSpeedMax  = 0.02
	SizeMin        = 2.0
	SizeMax        = 6.0
	BloomSizeMin   = 5.0
	BloomSizeMax   = 8.0
	BloomChance    = 0.15
	OpacityMin     = 0.4
	OpacityMax     = 0.9
)

// Animation speed clamps.
const (
	SpeedMin = 0.1
	SpeedMax = 3.0
)

// Energy envelope tuning. Attack is deliberately faster than decay so the
// orb snaps to loud syllables and relaxes slowly between them.
const (
	EnergyGate       = 0.08
	EnergyGain       = 1.4
	EnergyAttackRate = 0.35 // per tick while rising
	EnergyDecayRate  = 0.08 // per tick while falling
	EaseOutDuration  = 500 * time.Millisecond
)

// Particle color transitions.
const FadeDuration = 300 * time.Millisecond

// View geometry. The field orbits this center point; max orbit radius (90)
// plus the energy push (40) plus breathing offsets stays inside the view.
const (
	ViewSize = 320.0
	CenterX  = ViewSize / 2
	CenterY  = ViewSize / 2
)

// Center glow renderable.
const (
	GlowBaseSize    = 120.0
	GlowEnergyScale = 0.35
	GlowOpacityOn   = 0.85
	GlowEaseRate    = 0.05 // per tick toward target opacity
)
