package vis

import (
	"sync/atomic"

	"aura/internal/orb"
)

// LatestFrame is a frame sink that keeps only the newest frame. The engine
// pushes at its own cadence; the render loop reads whatever is current, so
// neither side ever waits on the other.
type LatestFrame struct {
	p atomic.Pointer[orb.Frame]
}

func NewLatestFrame() *LatestFrame { return &LatestFrame{} }

func (s *LatestFrame) PushFrame(f orb.Frame) {
	s.p.Store(&f)
}

// Load returns the newest frame, or nil before the first push.
func (s *LatestFrame) Load() *orb.Frame {
	return s.p.Load()
}
