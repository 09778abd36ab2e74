package orb

import "time"

type fadeRequest struct {
	idx      int
	from, to RGB
}

type fade struct {
	idx      int
	from, to RGB
	start    time.Time
}

// ColorTransitionManager animates particle fills between palettes over a
// fixed duration. Triggers are queued (state changes fire many at once,
// synchronously) and drained at the start of the next animation tick, so no
// transition objects are allocated mid-state-change.
type ColorTransitionManager struct {
	pending []fadeRequest
	active  []fade
}

// Queue requests a fade for the particle at idx. Any in-flight fade for the
// same particle is replaced; the new fade starts from the current fill.
func (m *ColorTransitionManager) Queue(idx int, from, to RGB) {
	for i := range m.active {
		if m.active[i].idx == idx {
			m.active[i] = m.active[len(m.active)-1]
			m.active = m.active[:len(m.active)-1]
			break
		}
	}
	m.pending = append(m.pending, fadeRequest{idx: idx, from: from, to: to})
}

// Drain promotes queued requests to active fades, all stamped with the same
// start time so synchronously triggered particles animate in lockstep.
func (m *ColorTransitionManager) Drain(now time.Time) {
	for _, req := range m.pending {
		if rgbEq(req.from, req.to) {
			continue
		}
		m.active = append(m.active, fade{idx: req.idx, from: req.from, to: req.to, start: now})
	}
	m.pending = m.pending[:0]
}

// Tick advances active fades and writes interpolated fills into the field.
func (m *ColorTransitionManager) Tick(now time.Time, f *ParticleField) {
	for i := 0; i < len(m.active); {
		fd := &m.active[i]
		if fd.idx >= len(f.P) {
			m.active[i] = m.active[len(m.active)-1]
			m.active = m.active[:len(m.active)-1]
			continue
		}
		progress := clampF(now.Sub(fd.start).Seconds()/FadeDuration.Seconds(), 0, 1)
		f.P[fd.idx].Col = lerpRGB(fd.from, fd.to, progress)
		if progress >= 1 {
			m.active[i] = m.active[len(m.active)-1]
			m.active = m.active[:len(m.active)-1]
			continue
		}
		i++
	}
}

// Active reports whether the particle at idx is mid-transition or has one
// queued.
func (m *ColorTransitionManager) Active(idx int) bool {
	for i := range m.active {
		if m.active[i].idx == idx {
			return true
		}
	}
	for i := range m.pending {
		if m.pending[i].idx == idx {
			return true
		}
	}
	return false
}

// Clear drops all fades. Called when the field is recreated, since indices
// no longer refer to the same particles.
func (m *ColorTransitionManager) Clear() {
	m.pending = m.pending[:0]
	m.active = m.active[:0]
}
