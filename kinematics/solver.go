package kinematics

import (
	"fmt"

	"github.com/adammck/hexwalk/math3d"
	"github.com/adammck/hexwalk/utils"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "kinematics",
})

// Actuator moves the servos of the legs. Angles are in degrees, already
// constrained to the servo travel (0-180).
type Actuator interface {
	SetLegAngles(leg int, a Angles) error
	Attach() error
	Detach() error
}

// OffsetStore persists the calibration trims.
type OffsetStore interface {
	LoadOffsets() ([]float64, error)
	SaveOffsets(Offsets) error
}

// Solver tracks the position of each foot and moves the legs there. Two
// positions are kept per leg: where it was last asked to go, and where it was
// last actually commanded to go. They diverge when a target is unreachable.
type Solver struct {
	geometry Geometry
	base     math3d.Vector3
	actuator Actuator

	raw     Offsets
	offsets [NumLegs]math3d.Vector3

	attempted [NumLegs]math3d.Vector3
	actuated  [NumLegs]math3d.Vector3
	angles    [NumLegs]Angles

	attached bool
}

// NewSolver returns a solver which commands the given actuator. The actuator
// may be nil, in which case nothing is moved (but positions are still
// tracked).
func NewSolver(g Geometry, base math3d.Vector3, act Actuator) *Solver {
	s := &Solver{
		geometry: g,
		base:     base,
		actuator: act,
		attached: true,
	}

	s.updateOffsets()
	return s
}

func (s *Solver) Geometry() Geometry {
	return s.geometry
}

// MoveTo solves the angles for the given leg to reach the target, and sends
// them to the actuator. The target is recorded as the leg's position even if it
// can't be reached, but nothing is sent in that case.
func (s *Solver) MoveTo(leg int, target math3d.Vector3) error {
	if err := checkLeg(leg); err != nil {
		log.Warn(err)
		return err
	}

	s.attempted[leg] = target

	a, err := Solve(s.geometry, leg, target, s.offsets[leg])
	if err != nil {
		log.WithFields(logrus.Fields{
			"leg":    leg,
			"target": target,
		}).Warn(err)
		return err
	}

	for i := range a {
		a[i] = utils.Constrain(a[i], 0, 180)
	}

	if s.actuator != nil {
		err = s.actuator.SetLegAngles(leg, a)
		if err != nil {
			return fmt.Errorf("%w (while moving leg %d)", err, leg)
		}
	}

	log.Debugf("leg=%d target=%s angles=%s", leg, target, a)
	s.actuated[leg] = target
	s.angles[leg] = a
	return nil
}

// Position returns the last position which the given leg was asked to move
// to, whether or not it could.
func (s *Solver) Position(leg int) math3d.Vector3 {
	if checkLeg(leg) != nil {
		return math3d.ZeroVector3
	}

	return s.attempted[leg]
}

// SetPosition overwrites the tracked position of a leg without moving it. It's
// used at startup, when the real position is unknown.
func (s *Solver) SetPosition(leg int, v math3d.Vector3) error {
	if err := checkLeg(leg); err != nil {
		return err
	}

	s.attempted[leg] = v
	return nil
}

func (s *Solver) Positions() [NumLegs]math3d.Vector3 {
	return s.attempted
}

// Actuated returns the last position which the given leg was actually
// commanded to.
func (s *Solver) Actuated(leg int) math3d.Vector3 {
	if checkLeg(leg) != nil {
		return math3d.ZeroVector3
	}

	return s.actuated[leg]
}

// Angles returns the last angles sent for the given leg.
func (s *Solver) Angles(leg int) Angles {
	if checkLeg(leg) != nil {
		return Angles{}
	}

	return s.angles[leg]
}

// SetRawOffsets replaces the calibration trims. Lists of the wrong length are
// padded or truncated, and a warning is logged.
func (s *Solver) SetRawOffsets(raw []float64) {
	o, err := NormalizeOffsets(raw)
	if err != nil {
		log.Warnf("%s (normalized)", err)
	}

	s.raw = o
	s.updateOffsets()
}

func (s *Solver) RawOffsets() Offsets {
	return s.raw
}

// AdjustOffset nudges a single trim. See Offsets.Adjust.
func (s *Solver) AdjustOffset(leg, joint int, delta float64) (float64, error) {
	v, err := s.raw.Adjust(leg, joint, delta)
	if err != nil {
		log.Warn(err)
		return 0, err
	}

	s.updateOffsets()
	return v, nil
}

// Offset returns the full offset (trims plus base) applied to a leg.
func (s *Solver) Offset(leg int) math3d.Vector3 {
	if checkLeg(leg) != nil {
		return math3d.ZeroVector3
	}

	return s.offsets[leg]
}

func (s *Solver) updateOffsets() {
	for i := range s.offsets {
		s.offsets[i] = s.raw.Leg(i).Add(s.base)
	}
}

// Attach powers up the servos.
func (s *Solver) Attach() error {
	if s.actuator != nil {
		if err := s.actuator.Attach(); err != nil {
			return fmt.Errorf("%w (while attaching)", err)
		}
	}

	s.attached = true
	return nil
}

// Detach powers down the servos, so the legs go limp.
func (s *Solver) Detach() error {
	if s.actuator != nil {
		if err := s.actuator.Detach(); err != nil {
			return fmt.Errorf("%w (while detaching)", err)
		}
	}

	s.attached = false
	return nil
}

func (s *Solver) Attached() bool {
	return s.attached
}
