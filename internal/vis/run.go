package vis

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"aura/internal/orb"
)

// Options for the desktop front end.
type Options struct {
	Seed     uint64
	Settings orb.SettingsProvider
}

// RunDesktop opens a window, runs the engine, and renders frames until the
// window closes.
//
// Keys: Space cycles the state, 1-4 select a state directly, C cycles color
// presets, V plays a demo voice phrase, L toggles the state label, Esc quits.
func RunDesktop(opts Options) error {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	sink := NewLatestFrame()
	engine, err := orb.New(orb.Options{
		Seed:     opts.Seed,
		Settings: opts.Settings,
		Sink:     sink,
	})
	if err != nil {
		return err
	}

	voice, err := NewVoice(opts.Seed ^ 0x70CE)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		voice = nil
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.03, 0.03, 0.05, 1.0)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	presetIdx := 0
	for i, p := range orb.Presets {
		if p.Colors() == engine.Palette() {
			presetIdx = i
			break
		}
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeySpace:
			engine.CycleState()
		case glfw.Key1:
			engine.SetIdle()
		case glfw.Key2:
			engine.SetListening()
		case glfw.Key3:
			engine.SetThinking()
		case glfw.Key4:
			engine.SetSpeaking()
		case glfw.KeyC:
			presetIdx = (presetIdx + 1) % len(orb.Presets)
			engine.ApplyColorPreset(orb.Presets[presetIdx].Name)
		case glfw.KeyV:
			if voice != nil {
				voice.Speak(engine)
			}
		case glfw.KeyL:
			engine.SetShowStateLabel(!engine.ShowStateLabel())
		}
	})

	engine.Start()
	defer engine.Stop()

	// Reusable render buffers.
	var solidBuf, glowBuf []float32
	lastTitle := ""

	for !window.ShouldClose() {
		glfw.PollEvents()

		fbW, fbH := window.GetFramebufferSize()
		rend.BeginFrame(fbW, fbH)

		if f := sink.Load(); f != nil {
			solidBuf, glowBuf = splitSprites(f, solidBuf, glowBuf)
			rend.DrawSolid(solidBuf, fbW, fbH)
			rend.DrawGlow(glowBuf, fbW, fbH)

			title := "Aura"
			if f.ShowLabel {
				title = "Aura - " + f.State.String()
			}
			if title != lastTitle {
				window.SetTitle(title)
				lastTitle = title
			}
		}

		window.SwapBuffers()
	}
	return nil
}

// splitSprites routes a frame's sprites into the solid and glow passes.
// Bloom particles go through the additive glow pass in glow style; in solid
// style everything stays in the plain pass. The center glow renderable is
// appended last so it layers over the bloom particles.
func splitSprites(f *orb.Frame, solid, glow []float32) ([]float32, []float32) {
	solid = solid[:0]
	glow = glow[:0]

	useGlow := f.Style == orb.StyleGlow
	for i := 0; i+8 <= len(f.Sprites); i += 8 {
		s := f.Sprites[i : i+8]
		if useGlow && s[7] == 1 {
			// Additive pass wants brightness in RGB.
			a := s[6]
			glow = append(glow, s[0], s[1], s[2]*2, s[3]*a, s[4]*a, s[5]*a, 1, 0)
			continue
		}
		solid = append(solid, s...)
	}

	if useGlow && f.Glow.Opacity > 0.01 {
		g := f.Glow
		r := float32(g.Col.R) / 255 * float32(g.Opacity) * 0.5
		gg := float32(g.Col.G) / 255 * float32(g.Opacity) * 0.5
		b := float32(g.Col.B) / 255 * float32(g.Opacity) * 0.5
		glow = append(glow, float32(g.X), float32(g.Y), float32(g.Size), r, gg, b, 1, 0)
	}
	return solid, glow
}
