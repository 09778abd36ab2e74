package orb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFadeLifecycle(t *testing.T) {
	f := newTestField(t, 50)
	var m ColorTransitionManager

	from := RGB{R: 0, G: 0, B: 0}
	to := RGB{R: 200, G: 100, B: 50}
	m.Queue(5, from, to)
	assert.True(t, m.Active(5), "queued fade counts as active")
	assert.False(t, m.Active(6))

	start := time.Now()
	m.Drain(start)

	m.Tick(start.Add(FadeDuration/2), f)
	assert.Equal(t, lerpRGB(from, to, 0.5), f.P[5].Col)
	assert.True(t, m.Active(5))

	m.Tick(start.Add(FadeDuration), f)
	assert.Equal(t, to, f.P[5].Col)
	assert.False(t, m.Active(5), "finished fade is dropped")
}

func TestFadeQueueReplacesInFlight(t *testing.T) {
	f := newTestField(t, 50)
	var m ColorTransitionManager

	start := time.Now()
	m.Queue(2, RGB{}, RGB{R: 255})
	m.Drain(start)
	m.Tick(start.Add(FadeDuration/2), f)
	mid := f.P[2].Col

	// Requeue mid-flight: the new fade starts from the current fill.
	m.Queue(2, mid, RGB{B: 255})
	m.Drain(start.Add(FadeDuration / 2))
	m.Tick(start.Add(FadeDuration), f)
	assert.Equal(t, lerpRGB(mid, RGB{B: 255}, 0.5), f.P[2].Col)
}

func TestFadeNoopSkipped(t *testing.T) {
	var m ColorTransitionManager
	c := RGB{R: 10, G: 20, B: 30}
	m.Queue(1, c, c)
	m.Drain(time.Now())
	assert.False(t, m.Active(1), "identical endpoints never become an active fade")
}

func TestFadeSharedStartTimestamp(t *testing.T) {
	f := newTestField(t, 50)
	var m ColorTransitionManager

	to := RGB{R: 90, G: 90, B: 90}
	for i := 0; i < 10; i++ {
		m.Queue(i, RGB{}, to)
	}
	start := time.Now()
	m.Drain(start)
	m.Tick(start.Add(FadeDuration/3), f)

	want := f.P[0].Col
	for i := 1; i < 10; i++ {
		assert.Equal(t, want, f.P[i].Col, "synchronously queued fades animate in lockstep")
	}
}

func TestFadeDropsOutOfRangeIndices(t *testing.T) {
	f := newTestField(t, 50)
	var m ColorTransitionManager

	m.Queue(120, RGB{}, RGB{R: 255})
	start := time.Now()
	m.Drain(start)
	m.Tick(start.Add(FadeDuration/2), f)
	assert.False(t, m.Active(120), "fade for a recreated-away index is discarded")
}

func TestFadeClear(t *testing.T) {
	var m ColorTransitionManager
	m.Queue(0, RGB{}, RGB{R: 1})
	m.Drain(time.Now())
	m.Queue(1, RGB{}, RGB{G: 1})
	require.True(t, m.Active(0))
	require.True(t, m.Active(1))

	m.Clear()
	assert.False(t, m.Active(0))
	assert.False(t, m.Active(1))
}
