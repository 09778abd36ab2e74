package orb

import "time"

// animLoop drives the field, color fades and glow at the fixed cadence until
// stop closes. One goroutine per Start.
func (e *Engine) animLoop(stop chan struct{}) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.stepAnimation(time.Now())
		}
	}
}

// stepAnimation is one animation tick. The fixed easing coefficients here
// are the entire source of the orb's slow transitions; raising the tick rate
// would speed every transition up with it.
func (e *Engine) stepAnimation(now time.Time) {
	e.mu.Lock()

	e.convergence += (e.targetConvergence - e.convergence) * ConvergenceRate
	e.orbitMul += (e.targetOrbit - e.orbitMul) * OrbitSpeedRate
	// Speed enters the clock squared so the slider has a visible effect at
	// both ends of its range.
	e.clock += TimeStep * e.speed * e.speed

	e.fades.Drain(now)
	e.fades.Tick(now, e.field)

	state := e.controller.State()
	energy := e.envelope.Effective(state, e.clock)
	e.field.Tick(e.convergence, e.orbitMul, energy, state, e.clock, e.speed)

	e.glowOpacity += (e.glowTarget - e.glowOpacity) * GlowEaseRate

	sink := e.sink
	var frame Frame
	if sink != nil {
		frame = e.frameLocked(energy, state)
	}
	e.mu.Unlock()

	if sink != nil {
		sink.PushFrame(frame)
	}
}

// frameLocked snapshots the current tick for a sink. The sprite buffer is
// freshly allocated each tick; the sink may hold it across ticks.
func (e *Engine) frameLocked(energy float64, state VisualState) Frame {
	return Frame{
		Sprites: e.field.RenderData(make([]float32, 0, len(e.field.P)*8)),
		Glow: GlowRenderable{
			X:       CenterX,
			Y:       CenterY,
			Size:    GlowBaseSize * (1 + GlowEnergyScale*energy),
			Opacity: e.glowOpacity,
			Col:     e.colors.GlowColor(),
		},
		State:     state,
		ShowLabel: e.showLabel,
		Style:     e.style,
	}
}

// energyLoop ticks the envelope while Speaking. It is spawned on entering
// Speaking and exits when the state moves off Speaking or an ease-out
// completes.
func (e *Engine) energyLoop(stop chan struct{}) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if e.stepEnergy(time.Now()) {
				return
			}
		}
	}
}

// stepEnergy is one envelope tick. Returns true when the loop should end:
// the state moved off Speaking, or an ease-out completed and the engine
// auto-transitioned to Idle.
func (e *Engine) stepEnergy(now time.Time) bool {
	e.mu.Lock()
	if e.controller.State() != StateSpeaking {
		e.mu.Unlock()
		return true
	}
	done := e.envelope.Tick(now)
	var obs StateObserver
	if done {
		e.setStateLocked(StateIdle)
		obs = e.observer
	}
	e.mu.Unlock()

	if done && obs != nil {
		obs(StateIdle)
	}
	return done
}
