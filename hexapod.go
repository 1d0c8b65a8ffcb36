package hexapod

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/adammck/hexwalk/math3d"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "hexapod",
})

// Input is a snapshot of what the operator wants, read once per tick.
type Input struct {

	// Strafe (X) and forwards/backwards (Y), each -1 to 1.
	Translation math3d.Vector2

	// Turn rate, -1 to 1.
	Rotation float64

	// Body height adjustment, -1 to 1.
	Height float64

	// Speed slider, 0 to 100.
	Speed float64

	// Gait index, 0 to 5.
	Gait int

	// Mode switches. Attack is only true on the tick it was pressed.
	Calibrate bool
	Sleep     bool
	Attack    bool

	// False when the controller has gone away. Translation and rotation are
	// zero while disconnected.
	Connected bool

	// Calibration trims supplied by the operator, or nil.
	Offsets []float64
}

// Neutral returns the input used before a controller has connected.
func Neutral() Input {
	return Input{Speed: 45}
}

// State is passed to every component each tick.
type State struct {
	Input Input

	// Number of ticks since boot. Used instead of the wall clock, so that
	// components behave the same in tests.
	Ticks uint64

	// Set when the process has been asked to stop. Components should wind down.
	Shutdown bool
}

type Component interface {
	Boot() error
	Tick(now time.Time, state *State) error
}

type Hexapod struct {
	Components []Component
	State      State

	shutdown atomic.Bool
}

func NewHexapod() *Hexapod {
	return &Hexapod{
		Components: []Component{},
		State: State{
			Input: Neutral(),
		},
	}
}

// Add registers a component to receive ticks every frame. Components are
// ticked in the order they were added.
func (h *Hexapod) Add(c Component) {
	h.Components = append(h.Components, c)
}

// Boot calls Boot on each component, stopping at the first error.
func (h *Hexapod) Boot() error {
	for _, c := range h.Components {
		err := c.Boot()
		if err != nil {
			return fmt.Errorf("%w (while booting %T)", err, c)
		}
	}

	return nil
}

// Shutdown asks the components to wind down, starting with the next tick. It's
// safe to call from any goroutine.
func (h *Hexapod) Shutdown() {
	h.shutdown.Store(true)
}

// Tick calls Tick on each component. Errors don't stop the other components
// from ticking; they're all returned together.
func (h *Hexapod) Tick(now time.Time) error {
	h.State.Ticks++
	if h.shutdown.Load() {
		h.State.Shutdown = true
	}

	var errs error
	for _, c := range h.Components {
		errs = multierr.Append(errs, c.Tick(now, &h.State))
	}

	if errs != nil {
		log.WithField("ticks", h.State.Ticks).Debugf("%d errors", len(multierr.Errors(errs)))
	}

	return errs
}
