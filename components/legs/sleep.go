package legs

import (
	"math"

	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"go.uber.org/multierr"
)

const (
	sleepRate = 0.03

	// Axes closer than this to the pose snap to it, rather than creeping
	// towards it forever.
	sleepSnap = 1.0
)

// DefaultSleepPose folds the legs in close to the body, resting on the ground.
var DefaultSleepPose = math3d.Vector3{X: 130, Y: 0, Z: -46}

type sleepPhase int

const (
	sleepMoving sleepPhase = iota + 1
	sleepArrived
	sleepAsleep
)

// Sleep lowers the body to the ground, then powers down the servos.
type Sleep struct {
	solver *kinematics.Solver
	target math3d.Vector3

	phase    sleepPhase
	detached bool
}

func NewSleep(s *kinematics.Solver, target math3d.Vector3) *Sleep {
	return &Sleep{
		solver: s,
		target: target,
		phase:  sleepMoving,
	}
}

// Reset starts over. The servos stay detached (if they were) until WakeUp.
func (s *Sleep) Reset() {
	s.phase = sleepMoving
}

// Update moves the legs one step towards the pose. Once every leg is there,
// the next call detaches the servos. Returns true while asleep.
func (s *Sleep) Update() (bool, error) {
	if !s.solver.Attached() {
		return true, nil
	}

	switch s.phase {
	case sleepMoving:
		arrived := true
		for i := 0; i < kinematics.NumLegs; i++ {
			if s.solver.Position(i) != s.target {
				arrived = false
				break
			}
		}

		if !arrived {
			return false, s.step()
		}

		log.Info("sleep pose reached")
		s.phase = sleepArrived
		fallthrough

	case sleepArrived:
		err := s.solver.Detach()
		if err != nil {
			return false, err
		}

		log.Info("servos detached")
		s.detached = true
		s.phase = sleepAsleep
		return true, nil
	}

	return true, nil
}

func (s *Sleep) step() error {
	var errs error

	for i := 0; i < kinematics.NumLegs; i++ {
		p := s.solver.Position(i)
		next := math3d.Lerp(p, s.target, sleepRate)

		if math.Abs(p.X-s.target.X) < sleepSnap {
			next.X = s.target.X
		}

		if math.Abs(p.Y-s.target.Y) < sleepSnap {
			next.Y = s.target.Y
		}

		if math.Abs(p.Z-s.target.Z) < sleepSnap {
			next.Z = s.target.Z
		}

		errs = multierr.Append(errs, s.solver.MoveTo(i, next))
	}

	return errs
}

// WakeUp reattaches the servos. Does nothing (and returns false) if they
// weren't detached.
func (s *Sleep) WakeUp() (bool, error) {
	if !s.detached {
		return false, nil
	}

	err := s.solver.Attach()
	if err != nil {
		return false, err
	}

	log.Info("servos attached")
	s.detached = false
	return true, nil
}

// Sleeping returns true once the servos have been detached.
func (s *Sleep) Sleeping() bool {
	return s.phase == sleepAsleep && s.detached
}
