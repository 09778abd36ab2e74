package vis

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"aura/internal/orb"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	// Samples per engine tick, for the amplitude envelope.
	framesPerBlock = sampleRate * 33 / 1000
)

// Voice synthesizes short procedural babble phrases and streams their
// amplitude into the engine while they play, exercising the full Speaking
// path: SetSpeaking, per-tick UpdateSpeakingEnergy, EndSpeaking.
type Voice struct {
	ctx      *oto.Context
	ready    chan struct{}
	rng      *orb.Rand
	speaking atomic.Bool
}

// NewVoice initializes audio output. On failure the returned error is
// advisory: a nil Voice still lets the rest of the program run, just mute.
func NewVoice(seed uint64) (*Voice, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, err
	}
	return &Voice{ctx: ctx, ready: ready, rng: orb.NewRand(seed)}, nil
}

// Speak starts a phrase unless one is already playing. Returns immediately;
// the engine eases back to Idle on its own once the phrase ends.
func (v *Voice) Speak(e *orb.Engine) {
	if !v.speaking.CompareAndSwap(false, true) {
		return
	}
	samples, envelope := v.genPhrase()
	go v.play(e, samples, envelope)
}

func (v *Voice) play(e *orb.Engine, samples []byte, envelope []float64) {
	defer v.speaking.Store(false)

	e.SetSpeaking()

	var player oto.Player
	select {
	case <-v.ready:
		player = v.ctx.NewPlayer(&soundReader{data: samples})
		player.Play()
	default:
		// Audio device not up yet: drive the orb silently.
	}

	ticker := time.NewTicker(orb.TickInterval)
	defer ticker.Stop()
	for _, a := range envelope {
		<-ticker.C
		e.UpdateSpeakingEnergy(a)
	}
	e.EndSpeaking()

	if player != nil {
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}
}

// genPhrase builds a babble phrase of 6-10 syllables and its per-tick
// amplitude envelope. Each syllable is a low carrier with two harmonics
// under an attack/decay envelope, separated by short gaps.
func (v *Voice) genPhrase() ([]byte, []float64) {
	type segment struct {
		dur    float64 // seconds
		freq   float64 // 0 for a gap
		accent float64
	}

	n := 6 + int(v.rng.Float64()*5)
	var segs []segment
	total := 0.0
	for i := 0; i < n; i++ {
		s := segment{
			dur:    v.rng.RangeF(0.12, 0.22),
			freq:   v.rng.RangeF(110, 180),
			accent: v.rng.RangeF(0.6, 1.0),
		}
		segs = append(segs, s)
		total += s.dur
		gap := segment{dur: v.rng.RangeF(0.04, 0.08)}
		segs = append(segs, gap)
		total += gap.dur
	}

	frames := int(total * sampleRate)
	buf := make([]byte, frames*8)
	envelope := make([]float64, 0, frames/framesPerBlock+1)

	frame := 0
	blockPeak := 0.0
	blockFill := 0
	for _, s := range segs {
		segFrames := int(s.dur * sampleRate)
		for i := 0; i < segFrames && frame < frames; i++ {
			sample := 0.0
			if s.freq > 0 {
				t := float64(i) / sampleRate
				progress := float64(i) / float64(segFrames)
				env := syllableEnv(progress) * s.accent
				w := 2 * math.Pi * s.freq * t
				sample = env * 0.3 * (math.Sin(w) + 0.5*math.Sin(2*w) + 0.25*math.Sin(3*w))
			}
			putStereoF32(buf, frame, sample)
			frame++

			if a := math.Abs(sample) * 2.2; a > blockPeak {
				blockPeak = a
			}
			blockFill++
			if blockFill == framesPerBlock {
				envelope = append(envelope, math.Min(1, blockPeak))
				blockPeak = 0
				blockFill = 0
			}
		}
	}
	if blockFill > 0 {
		envelope = append(envelope, math.Min(1, blockPeak))
	}
	return buf, envelope
}

// syllableEnv shapes one syllable: fast attack, held body, released tail.
func syllableEnv(progress float64) float64 {
	switch {
	case progress < 0.15:
		return progress / 0.15
	case progress > 0.6:
		return 1 - (progress-0.6)/0.4
	}
	return 1
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}
