package vis

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"aura/internal/orb"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// maxSprites bounds the streaming VBO: the full field plus the center glow.
const maxSprites = orb.MaxParticles + 1

type Renderer struct {
	// Solid sprite program.
	solidProg uint32
	spriteVAO uint32
	spriteVBO uint32

	solUCamera     int32
	solUZoom       int32
	solUResolution int32

	// Glow program shares the sprite VAO, additive blend only.
	glowProg        uint32
	glowUCamera     int32
	glowUZoom       int32
	glowUResolution int32
}

func NewRenderer() (*Renderer, error) {
	solidProg, err := linkProgram(spriteVertSrc, solidFragSrc)
	if err != nil {
		return nil, fmt.Errorf("solid program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(solidProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{solidProg: solidProg, glowProg: glowProg}

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, bloom).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxSprites*int(stride), nil, gl.STREAM_DRAW)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aBloom (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.UseProgram(solidProg)
	r.solUCamera = gl.GetUniformLocation(solidProg, gl.Str("uCamera\x00"))
	r.solUZoom = gl.GetUniformLocation(solidProg, gl.Str("uZoom\x00"))
	r.solUResolution = gl.GetUniformLocation(solidProg, gl.Str("uResolution\x00"))

	gl.UseProgram(glowProg)
	r.glowUCamera = gl.GetUniformLocation(glowProg, gl.Str("uCamera\x00"))
	r.glowUZoom = gl.GetUniformLocation(glowProg, gl.Str("uZoom\x00"))
	r.glowUResolution = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	gl.DeleteBuffers(1, &r.spriteVBO)
	gl.DeleteVertexArrays(1, &r.spriteVAO)
	gl.DeleteProgram(r.solidProg)
	gl.DeleteProgram(r.glowProg)
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// zoom maps the fixed orb view onto the framebuffer's shorter edge.
func zoom(fbW, fbH int) float32 {
	short := fbW
	if fbH < short {
		short = fbH
	}
	return float32(short) / orb.ViewSize
}

// DrawSolid renders point sprites with standard alpha blending.
// buf format: [x, y, size, r, g, b, a, bloom] * N (8 floats per sprite).
func (r *Renderer) DrawSolid(buf []float32, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > maxSprites {
		count = maxSprites
	}

	gl.UseProgram(r.solidProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(r.solUCamera, orb.CenterX, orb.CenterY)
	gl.Uniform1f(r.solUZoom, zoom(fbW, fbH))
	gl.Uniform2f(r.solUResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}

// DrawGlow renders light sprites with additive blending and radial falloff.
// buf format: same as DrawSolid. RGB should be pre-multiplied by brightness.
func (r *Renderer) DrawGlow(buf []float32, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > maxSprites {
		count = maxSprites
	}

	gl.UseProgram(r.glowProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(r.glowUCamera, orb.CenterX, orb.CenterY)
	gl.Uniform1f(r.glowUZoom, zoom(fbW, fbH))
	gl.Uniform2f(r.glowUResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}
