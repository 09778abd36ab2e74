package orb

// Orb styles, chosen once at startup from settings.
const (
	StyleGlow  = "glow"  // bloom particles and center glow use additive blur
	StyleSolid = "solid" // everything through the plain sprite pass
)

// GlowRenderable is the single soft light behind the field, visible while
// Speaking.
type GlowRenderable struct {
	X, Y    float64
	Size    float64
	Opacity float64
	Col     RGB
}

// Frame is the engine's per-tick output: everything a rendering sink needs
// to draw the orb, and nothing it doesn't. Sprites uses the 8-float layout
// [x, y, size, r, g, b, a, bloom] per particle.
type Frame struct {
	Sprites   []float32
	Glow      GlowRenderable
	State     VisualState
	ShowLabel bool
	Style     string
}

// FrameSink consumes frames. PushFrame is called from the animation
// goroutine once per tick; implementations must not block.
type FrameSink interface {
	PushFrame(Frame)
}

// StateObserver is notified after every state change, including the
// automatic ease-out transition to Idle.
type StateObserver func(VisualState)
