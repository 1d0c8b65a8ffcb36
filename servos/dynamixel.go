package servos

import (
	"fmt"
	"time"

	"github.com/adammck/dynamixel/network"
	"github.com/adammck/dynamixel/servo"
	"github.com/adammck/dynamixel/servo/ax"
	"github.com/adammck/hexwalk"
	"github.com/adammck/hexwalk/kinematics"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "servos",
})

// Joint is the part of a Dynamixel servo which the legs use.
type Joint interface {
	MoveTo(angle float64) error
	SetTorqueEnable(enabled bool) error
	SetLED(state bool) error
}

// Bus sends the buffered instructions to every servo at once.
type Bus interface {
	Action() error
}

// Dynamixel drives legs built from AX-12 servos on a single bus. Moves are
// buffered, and sent together at the end of each tick, so it must be added to
// the hexapod after the legs.
type Dynamixel struct {
	bus    Bus
	joints [kinematics.NumLegs][kinematics.JointsPerLeg]Joint
	cache  cache
	dirty  bool
}

func NewDynamixel(bus Bus, joints [kinematics.NumLegs][kinematics.JointsPerLeg]Joint) *Dynamixel {
	return &Dynamixel{
		bus:    bus,
		joints: joints,
	}
}

// OpenDynamixel initializes the servos with the given IDs, which are indexed
// by leg then joint.
func OpenDynamixel(n *network.Network, ids [kinematics.NumLegs][kinematics.JointsPerLeg]int) (*Dynamixel, error) {
	var joints [kinematics.NumLegs][kinematics.JointsPerLeg]Joint

	for leg := range ids {
		for j, id := range ids[leg] {
			s, err := open(n, id)
			if err != nil {
				return nil, fmt.Errorf("%w (while opening servo #%d)", err, id)
			}

			joints[leg][j] = s
		}
	}

	return NewDynamixel(n, joints), nil
}

// open readies a single servo with sensible defaults.
func open(n *network.Network, id int) (*servo.Servo, error) {
	s, err := ax.New(n, id)
	if err != nil {
		return nil, err
	}

	// Don't bother sending ACKs for writes. We must do this first, to ensure
	// that the servos are in the expected state before sending other commands.
	err = s.SetReturnLevel(1)
	if err != nil {
		return nil, fmt.Errorf("%w (while setting return level)", err)
	}

	err = s.Ping()
	if err != nil {
		return nil, fmt.Errorf("%w (while pinging)", err)
	}

	err = s.SetReturnDelayTime(0)
	if err != nil {
		return nil, fmt.Errorf("%w (while setting return delay)", err)
	}

	err = s.SetTorqueEnable(true)
	if err != nil {
		return nil, fmt.Errorf("%w (while enabling torque)", err)
	}

	err = s.SetMovingSpeed(1023)
	if err != nil {
		return nil, fmt.Errorf("%w (while setting move speed)", err)
	}

	// Buffer all subsequent instructions. The ACTION command is issued at the
	// end of each tick. Note that this is just an attribute of the servo; it
	// doesn't affect the actual control table, so doesn't need un-setting.
	s.SetBuffered(true)

	return s, nil
}

// SetLegAngles buffers a move of every joint in the leg. The servos are
// centered at zero, but the angles are centered at 90.
func (d *Dynamixel) SetLegAngles(leg int, a kinematics.Angles) error {
	if !d.cache.changed(leg, a) {
		return nil
	}

	var errs error
	for j, jt := range d.joints[leg] {
		errs = multierr.Append(errs, jt.MoveTo(a[j]-90))
	}

	if errs != nil {
		d.cache.forget(leg)
		return errs
	}

	d.dirty = true
	return nil
}

func (d *Dynamixel) Attach() error {
	d.cache.clear()
	return d.each(func(jt Joint) error {
		return multierr.Append(jt.SetTorqueEnable(true), jt.SetLED(true))
	})
}

// Detach powers off every servo. This should be called before terminating the
// program, to ensure that servos don't stay powered up indefinitely.
func (d *Dynamixel) Detach() error {
	d.cache.clear()
	return d.each(func(jt Joint) error {
		return multierr.Append(jt.SetTorqueEnable(false), jt.SetLED(false))
	})
}

func (d *Dynamixel) each(f func(Joint) error) error {
	var errs error
	for leg := range d.joints {
		for _, jt := range d.joints[leg] {
			errs = multierr.Append(errs, f(jt))
		}
	}

	return errs
}

func (d *Dynamixel) Boot() error {
	return nil
}

// Tick sends ACTION, if anything moved since the last tick.
func (d *Dynamixel) Tick(now time.Time, state *hexapod.State) error {
	if !d.dirty {
		return nil
	}

	d.dirty = false
	err := d.bus.Action()
	if err != nil {
		return fmt.Errorf("%w (while sending action)", err)
	}

	return nil
}

// Voltage reads the supply voltage from the first servo. Every servo shares
// the same supply, so any one will do.
func (d *Dynamixel) Voltage() (float64, error) {
	v, ok := d.joints[0][0].(interface {
		Voltage() (float64, error)
	})

	if !ok {
		return 0, fmt.Errorf("servo %T can't read voltage", d.joints[0][0])
	}

	return v.Voltage()
}
