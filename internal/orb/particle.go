package orb

import (
	"fmt"
	"math"
)

// Particle is one orbiting point of the field. Created in bulk on field
// (re)initialization, mutated in place every tick, discarded wholesale on
// recreation.
type Particle struct {
	X, Y        float64
	Size        float64
	BaseOpacity float64
	OrbitAngle  float64
	OrbitRadius float64
	OrbitSpeed  float64
	PulsePhase  float64
	Mix         float64 // fixed blend factor within the mode palette
	Bloom       bool    // larger particle, rendered with blur by the sink
	Mode        ColorMode

	Col     RGB     // current fill (may be mid-transition)
	Opacity float64 // rendered opacity
	Scale   float64 // eased size multiplier
}

// ParticleField owns the particle arena.
type ParticleField struct {
	P    []Particle
	rng  *Rand
	mode ColorMode
}

func NewParticleField(seed uint64) *ParticleField {
	return &ParticleField{rng: NewRand(seed)}
}

func (f *ParticleField) Mode() ColorMode { return f.mode }

// SetMode sets the mode applied to newly generated particles. Existing
// particles flip mode individually when their color transition is queued.
func (f *ParticleField) SetMode(m ColorMode) { f.mode = m }

// CreateField generates exactly count particles within the documented
// attribute ranges and swaps them in as one step, so a concurrent tick never
// observes a partially built field.
func (f *ParticleField) CreateField(count int, colors Colors) error {
	if count <= 0 {
		return fmt.Errorf("create field: invalid particle count %d", count)
	}
	next := make([]Particle, count)
	for i := range next {
		p := &next[i]
		p.OrbitAngle = f.rng.RangeF(0, 2*math.Pi)
		p.OrbitRadius = f.rng.RangeF(OrbitRadiusMin, OrbitRadiusMax)
		p.OrbitSpeed = f.rng.RangeF(OrbitSpeedMin, OrbitSpeedMax)
		p.Size = f.rng.RangeF(SizeMin, SizeMax)
		if f.rng.Float64() < BloomChance {
			p.Size = f.rng.RangeF(BloomSizeMin, BloomSizeMax)
			p.Bloom = true
		}
		p.BaseOpacity = f.rng.RangeF(OpacityMin, OpacityMax)
		p.PulsePhase = f.rng.RangeF(0, 2*math.Pi)
		p.Mix = f.rng.Float64()
		p.Mode = f.mode
		p.Col = colors.ModeColor(f.mode, p.Mix)
		p.Opacity = p.BaseOpacity
		p.Scale = 1.0

		// Spawn on the orbit so the field doesn't converge in from a corner.
		p.X = CenterX + math.Cos(p.OrbitAngle)*p.OrbitRadius
		p.Y = CenterY + math.Sin(p.OrbitAngle)*p.OrbitRadius
	}
	f.P = next
	return nil
}

// RecreateField discards every particle and builds a fresh set. The current
// color mode carries over.
func (f *ParticleField) RecreateField(count int, colors Colors) error {
	return f.CreateField(count, colors)
}

// ApplyColors re-fills particles from the palette. Particles mid-transition
// are skipped; their fade target was captured when the fade was queued.
func (f *ParticleField) ApplyColors(colors Colors, fades *ColorTransitionManager) {
	for i := range f.P {
		if fades != nil && fades.Active(i) {
			continue
		}
		p := &f.P[i]
		p.Col = colors.ModeColor(p.Mode, p.Mix)
	}
}
