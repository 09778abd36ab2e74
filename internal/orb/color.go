package orb

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func rgbEq(a, b RGB) bool { return a.R == b.R && a.G == b.G && a.B == b.B }

// ColorMode selects which palette slot a particle is filled from.
type ColorMode uint8

const (
	ColorPrimary ColorMode = iota
	ColorAlternate
)

// Colors is the live palette: primary/secondary for the resting states,
// thinking for the alternate mode.
type Colors struct {
	Primary   RGB
	Secondary RGB
	Thinking  RGB
}

// ModeColor returns a particle's fill for the given mode. In primary mode
// each particle sits somewhere on the primary→secondary ramp (mix is the
// particle's fixed blend factor) so the field reads as one hue with depth.
func (c Colors) ModeColor(mode ColorMode, mix float64) RGB {
	if mode == ColorAlternate {
		return c.Thinking
	}
	return lerpRGB(c.Primary, c.Secondary, mix*0.6)
}

// GlowColor is the fill of the center glow renderable.
func (c Colors) GlowColor() RGB {
	return lerpRGB(c.Primary, c.Secondary, 0.5)
}

// ColorPreset is a named palette selectable at startup or at runtime.
type ColorPreset struct {
	Name      string
	Primary   RGB
	Secondary RGB
	Thinking  RGB
}

func (p ColorPreset) Colors() Colors {
	return Colors{Primary: p.Primary, Secondary: p.Secondary, Thinking: p.Thinking}
}

var (
	PresetAurora = ColorPreset{
		Name:      "aurora",
		Primary:   RGB{R: 92, G: 201, B: 245},
		Secondary: RGB{R: 128, G: 120, B: 245},
		Thinking:  RGB{R: 189, G: 122, B: 255},
	}
	PresetOcean = ColorPreset{
		Name:      "ocean",
		Primary:   RGB{R: 56, G: 170, B: 220},
		Secondary: RGB{R: 40, G: 110, B: 190},
		Thinking:  RGB{R: 110, G: 220, B: 200},
	}
	PresetEmber = ColorPreset{
		Name:      "ember",
		Primary:   RGB{R: 255, G: 150, B: 70},
		Secondary: RGB{R: 230, G: 80, B: 50},
		Thinking:  RGB{R: 255, G: 210, B: 110},
	}
	PresetViolet = ColorPreset{
		Name:      "violet",
		Primary:   RGB{R: 170, G: 110, B: 250},
		Secondary: RGB{R: 110, G: 70, B: 210},
		Thinking:  RGB{R: 240, G: 140, B: 230},
	}
	PresetMono = ColorPreset{
		Name:      "mono",
		Primary:   RGB{R: 220, G: 224, B: 230},
		Secondary: RGB{R: 140, G: 146, B: 156},
		Thinking:  RGB{R: 255, G: 255, B: 255},
	}

	Presets = []ColorPreset{PresetAurora, PresetOcean, PresetEmber, PresetViolet, PresetMono}
)

// PresetByName looks up a preset; ok is false for unknown names.
func PresetByName(name string) (ColorPreset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return ColorPreset{}, false
}
