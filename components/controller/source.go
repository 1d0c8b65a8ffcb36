package controller

import (
	"io"
	"sync/atomic"

	"github.com/adammck/sixaxis"
)

// Pad is a snapshot of the controls which drive the hexapod. Sticks are
// normalized to -1 (left, down) to 1 (right, up).
type Pad struct {
	LeftX, LeftY   float64
	RightX, RightY float64

	Up, Down bool

	Triangle bool
	Circle   bool
	Square   bool
	Cross    bool
	Start    bool
}

// Source provides the state of a gamepad.
type Source interface {
	Run()

	// Pad returns the latest state, and false if the pad has gone away.
	Pad() (Pad, bool)
}

// SixAxis reads a PS3 controller from an event device.
type SixAxis struct {
	sa        *sixaxis.SA
	connected atomic.Bool
}

func NewSixAxis(r io.Reader) *SixAxis {
	return &SixAxis{sa: sixaxis.New(r)}
}

// Run reads events until the device goes away. It blocks, so call it in a
// goroutine.
func (s *SixAxis) Run() {
	s.connected.Store(true)
	s.sa.Run()
	s.connected.Store(false)
	log.Warn("sixaxis disconnected")
}

func (s *SixAxis) Pad() (Pad, bool) {
	sa := s.sa

	// The sticks are -127 to 127, with Y increasing downwards.
	return Pad{
		LeftX:    float64(sa.LeftStick.X) / 127.0,
		LeftY:    float64(-sa.LeftStick.Y) / 127.0,
		RightX:   float64(sa.RightStick.X) / 127.0,
		RightY:   float64(-sa.RightStick.Y) / 127.0,
		Up:       sa.Up > 0,
		Down:     sa.Down > 0,
		Triangle: sa.Triangle > 0,
		Circle:   sa.Circle > 0,
		Square:   sa.Square > 0,
		Cross:    sa.Cross > 0,
		Start:    sa.Start,
	}, s.connected.Load()
}
