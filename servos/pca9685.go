package servos

import (
	"fmt"

	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/utils"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/pca9685"
)

const (

	// Standard hobby servo timing: a 50Hz frame, with the pulse width mapping
	// linearly onto 0-180 degrees.
	pwmPeriod = 20_000_000 // ns
	minPulse  = 500.0      // µs
	maxPulse  = 2500.0     // µs
)

// Channel is a single output of one of the PWM boards.
type Channel struct {
	Board   int
	Channel uint8
}

// DefaultChannels puts the first five legs on the first board, three channels
// each, and the last leg on the second.
func DefaultChannels() [kinematics.NumLegs][kinematics.JointsPerLeg]Channel {
	var out [kinematics.NumLegs][kinematics.JointsPerLeg]Channel

	for leg := range out {
		for j := range out[leg] {
			if leg < 5 {
				out[leg][j] = Channel{Board: 0, Channel: uint8(leg*3 + j)}
			} else {
				out[leg][j] = Channel{Board: 1, Channel: uint8(j)}
			}
		}
	}

	return out
}

// PWM is the part of a PWM board which the legs use.
type PWM interface {
	Top() uint32
	Set(channel uint8, value uint32)
}

// PCA9685 drives hobby servos from a set of PCA9685 PWM boards.
type PCA9685 struct {
	boards   []PWM
	channels [kinematics.NumLegs][kinematics.JointsPerLeg]Channel
	cache    cache
}

func NewPCA9685(boards []PWM, channels [kinematics.NumLegs][kinematics.JointsPerLeg]Channel) (*PCA9685, error) {
	for leg := range channels {
		for _, ch := range channels[leg] {
			if ch.Board < 0 || ch.Board >= len(boards) {
				return nil, fmt.Errorf("leg %d uses board %d, but there are only %d", leg, ch.Board, len(boards))
			}
		}
	}

	return &PCA9685{
		boards:   boards,
		channels: channels,
	}, nil
}

// OpenPCA9685 configures a board at each of the given addresses on the bus.
func OpenPCA9685(bus drivers.I2C, addrs []uint8, channels [kinematics.NumLegs][kinematics.JointsPerLeg]Channel) (*PCA9685, error) {
	boards := make([]PWM, len(addrs))

	for i, addr := range addrs {
		d := pca9685.New(bus, addr)
		err := d.Configure(pca9685.PWMConfig{Period: pwmPeriod})
		if err != nil {
			return nil, fmt.Errorf("%w (while configuring pca9685 at 0x%02x)", err, addr)
		}

		log.Infof("pca9685 at 0x%02x ready", addr)
		boards[i] = d
	}

	return NewPCA9685(boards, channels)
}

// pulseValue returns the duty cycle value, out of top, which positions a servo
// at the given angle.
func pulseValue(angle float64, top uint32) uint32 {
	angle = utils.Constrain(angle, 0, 180)
	us := utils.MapRange(angle, 0, 180, minPulse, maxPulse)
	return uint32(us * 1000 / pwmPeriod * float64(top))
}

func (p *PCA9685) SetLegAngles(leg int, a kinematics.Angles) error {
	if !p.cache.changed(leg, a) {
		return nil
	}

	for j, ch := range p.channels[leg] {
		b := p.boards[ch.Board]
		b.Set(ch.Channel, pulseValue(a[j], b.Top()))
	}

	return nil
}

// Attach does nothing until the next move; the servos are powered as soon as
// they receive a pulse.
func (p *PCA9685) Attach() error {
	p.cache.clear()
	return nil
}

// Detach stops the pulses, so the servos go limp.
func (p *PCA9685) Detach() error {
	p.cache.clear()

	for leg := range p.channels {
		for _, ch := range p.channels[leg] {
			p.boards[ch.Board].Set(ch.Channel, 0)
		}
	}

	return nil
}
