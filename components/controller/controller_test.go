package controller

import (
	"testing"
	"time"

	"github.com/adammck/hexwalk"
	"github.com/adammck/hexwalk/gait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pad       Pad
	connected bool
	runs      int
}

func (f *fakeSource) Run() {
	f.runs++
}

func (f *fakeSource) Pad() (Pad, bool) {
	return f.pad, f.connected
}

func setup() (*Controller, *fakeSource, *hexapod.Hexapod) {
	h := hexapod.NewHexapod()
	src := &fakeSource{connected: true}
	return New(h, src), src, h
}

func tick(t *testing.T, c *Controller, st *hexapod.State) {
	require.NoError(t, c.Tick(time.Time{}, st))
}

func TestLatch(t *testing.T) {
	l := Latch{}

	type eg struct {
		in  bool
		out bool
	}

	for i, e := range []eg{
		{false, false},
		{true, true},
		{true, false},
		{true, false},
		{false, false},
		{true, true},
	} {
		assert.Equal(t, e.out, l.Run(e.in), "step %d", i)
	}
}

func TestSmoothing(t *testing.T) {
	c, src, _ := setup()
	st := &hexapod.State{}

	src.pad.LeftY = 1
	tick(t, c, st)
	assert.InDelta(t, 0.1, st.Input.Translation.Y, 1e-9)

	tick(t, c, st)
	assert.InDelta(t, 0.19, st.Input.Translation.Y, 1e-9)

	for i := 0; i < 200; i++ {
		tick(t, c, st)
	}

	assert.InDelta(t, 1, st.Input.Translation.Y, 1e-6)
	assert.True(t, st.Input.Connected)
}

func TestDisconnectGoesNeutral(t *testing.T) {
	c, src, _ := setup()
	st := &hexapod.State{}

	src.pad = Pad{LeftX: 1, RightX: -1, RightY: 1}
	for i := 0; i < 100; i++ {
		tick(t, c, st)
	}

	require.InDelta(t, 1, st.Input.Translation.X, 1e-3)

	// Neutral on the very first tick without a pad.
	src.connected = false
	tick(t, c, st)
	assert.False(t, st.Input.Connected)
	assert.Equal(t, 0.0, st.Input.Translation.X)
	assert.Equal(t, 0.0, st.Input.Translation.Y)
	assert.Equal(t, 0.0, st.Input.Rotation)
	assert.Equal(t, 0.0, st.Input.Height)

	// Smoothing starts over from zero on reconnect.
	src.connected = true
	tick(t, c, st)
	assert.True(t, st.Input.Connected)
	assert.InDelta(t, 0.1, st.Input.Translation.X, 1e-9)
	assert.InDelta(t, -0.1, st.Input.Rotation, 1e-9)
}

func TestButtons(t *testing.T) {
	c, src, h := setup()
	st := &hexapod.State{}

	press := func(p Pad) {
		src.pad = p
		tick(t, c, st)
		src.pad = Pad{}
		tick(t, c, st)
	}

	tick(t, c, st)
	assert.Equal(t, 45.0, st.Input.Speed)
	assert.Equal(t, int(gait.Tripod), st.Input.Gait)

	press(Pad{Up: true})
	assert.Equal(t, 55.0, st.Input.Speed)

	for i := 0; i < 10; i++ {
		press(Pad{Down: true})
	}

	assert.Equal(t, 0.0, st.Input.Speed)

	press(Pad{Triangle: true})
	assert.Equal(t, int(gait.Ripple), st.Input.Gait)

	for i := 0; i < 5; i++ {
		press(Pad{Triangle: true})
	}

	assert.Equal(t, int(gait.Tripod), st.Input.Gait)

	press(Pad{Square: true})
	assert.True(t, st.Input.Calibrate)
	press(Pad{Square: true})
	assert.False(t, st.Input.Calibrate)

	press(Pad{Cross: true})
	assert.True(t, st.Input.Sleep)

	// Attack is only set on the tick it was pressed, even if held.
	src.pad = Pad{Circle: true}
	tick(t, c, st)
	assert.True(t, st.Input.Attack)
	tick(t, c, st)
	assert.False(t, st.Input.Attack)

	src.pad = Pad{Start: true}
	tick(t, c, st)
	require.NoError(t, h.Tick(time.Time{}))
	assert.True(t, h.State.Shutdown)
}
