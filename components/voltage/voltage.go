package voltage

import (
	"fmt"
	"time"

	"github.com/adammck/hexwalk"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "voltage",
})

// DefaultMinimum is the voltage at which the hexapod should shut down. Running
// a 3S LiPo below this for too long will damage it.
const DefaultMinimum = 9.6

type HasVoltage interface {
	Voltage() (float64, error)
}

// Check reads the supply voltage every so often, and shuts the hexapod down
// if it's too low.
type Check struct {
	hex *hexapod.Hexapod
	src HasVoltage

	// Number of ticks between checks. The reads are pretty quick, but not
	// instant.
	Interval uint64
	Minimum  float64

	last    uint64
	checked bool
	low     bool
}

func New(hex *hexapod.Hexapod, src HasVoltage, interval uint64) *Check {
	return &Check{
		hex:      hex,
		src:      src,
		Interval: interval,
		Minimum:  DefaultMinimum,
	}
}

func (c *Check) Boot() error {
	return c.CheckVoltage(0)
}

func (c *Check) Tick(now time.Time, state *hexapod.State) error {
	if c.NeedsVoltageCheck(state.Ticks) {
		return c.CheckVoltage(state.Ticks)
	}

	return nil
}

// NeedsVoltageCheck returns true if it's been a while since we checked the
// voltage level.
func (c *Check) NeedsVoltageCheck(ticks uint64) bool {
	return !c.checked || ticks-c.last >= c.Interval
}

// Low returns true once a low voltage has been seen.
func (c *Check) Low() bool {
	return c.low
}

// CheckVoltage fetches the voltage level, and starts shutting down if it's too
// low. Read errors are returned, but don't trigger a shutdown.
func (c *Check) CheckVoltage(ticks uint64) error {
	val, err := c.src.Voltage()
	c.last = ticks
	c.checked = true
	if err != nil {
		return fmt.Errorf("%w (while reading voltage)", err)
	}

	log.Debugf("voltage=%.2f", val)

	if val < c.Minimum {
		if !c.low {
			log.Warnf("low voltage (%.2fv), shutting down", val)
			c.hex.Shutdown()
		}

		c.low = true
	}

	return nil
}
