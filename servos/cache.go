package servos

import (
	"github.com/adammck/hexwalk/kinematics"
)

// cache remembers the last angles sent to each leg, so that unchanged legs
// aren't written again.
type cache struct {
	angles [kinematics.NumLegs]kinematics.Angles
	valid  [kinematics.NumLegs]bool
}

// changed returns true if the angles differ from those last sent to the leg,
// and records them.
func (c *cache) changed(leg int, a kinematics.Angles) bool {
	if c.valid[leg] && c.angles[leg] == a {
		return false
	}

	c.angles[leg] = a
	c.valid[leg] = true
	return true
}

func (c *cache) forget(leg int) {
	c.valid[leg] = false
}

func (c *cache) clear() {
	c.valid = [kinematics.NumLegs]bool{}
}
