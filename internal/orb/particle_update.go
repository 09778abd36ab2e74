package orb

import "math"

// Tick advances every particle one animation step. now is the engine's
// animation clock (already speed-scaled), speed the raw animation speed used
// for base rotation.
func (f *ParticleField) Tick(convergence, orbitMul, energy float64, state VisualState, now, speed float64) {
	baseRotation := 0.5 * speed
	smoothing := 0.04
	breathe := 1.0 + 4.0*energy
	if state == StateIdle {
		baseRotation = 0.08 * speed
		smoothing = 0.015
		breathe = 0.5
	}

	for i := range f.P {
		p := &f.P[i]

		p.OrbitAngle += p.OrbitSpeed * orbitMul * baseRotation

		// Blend the spread orbit toward the tight center cluster.
		baseRadius := p.OrbitRadius + energy*40
		tightRadius := 6 + p.PulsePhase*2.0
		targetRadius := lerpF(baseRadius, tightRadius, convergence)

		tx := CenterX + math.Cos(p.OrbitAngle)*targetRadius
		ty := CenterY + math.Sin(p.OrbitAngle)*targetRadius
		p.X = lerpF(p.X, tx, smoothing)
		p.Y = lerpF(p.Y, ty, smoothing)

		// Breathing drift, amplified by speech energy.
		p.X += breathe * math.Sin(now*0.2+p.PulsePhase)
		p.Y += breathe * math.Cos(now*0.15+p.PulsePhase*0.7)

		p.Opacity = clampF(p.BaseOpacity+math.Sin(now*0.5+p.PulsePhase)*0.06+energy*0.2, 0.25, 1.0)
		p.Scale = lerpF(p.Scale, 1.0+0.6*energy, 0.05)
	}
}

// RenderData appends one sprite per particle to buf and returns it.
// Format: [x, y, size, r, g, b, a, bloom] * N — the same 8-float layout the
// sink's point-sprite pipeline streams straight into a VBO. bloom is 1 for
// particles the sink should draw through its blur/glow pass.
func (f *ParticleField) RenderData(buf []float32) []float32 {
	buf = buf[:0]
	for i := range f.P {
		p := &f.P[i]
		bloom := float32(0)
		if p.Bloom {
			bloom = 1
		}
		buf = append(buf,
			float32(p.X), float32(p.Y), float32(p.Size*p.Scale),
			float32(p.Col.R)/255.0, float32(p.Col.G)/255.0, float32(p.Col.B)/255.0,
			float32(p.Opacity), bloom,
		)
	}
	return buf
}
