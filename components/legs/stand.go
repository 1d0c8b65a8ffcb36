package legs

import (
	"math"

	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"go.uber.org/multierr"
)

const (

	// Progress units per tick, out of standCycle.
	standStep  = 20.0
	standCycle = 1000.0

	// Number of passes (of up to three legs each) before standing is complete.
	standPasses = 2

	// Legs closer than this to the standing position aren't moved.
	standTolerance = 5.0

	// Extra lift added to the middle of the curve when the foot would otherwise
	// drag along the ground, and when getting up from sleep or an attack.
	standDragLift = 70.0
	standHighLift = 80.0
)

// Stand moves every foot to the standing position, each along a curve which
// lifts it off the ground on the way. Normally only the three highest legs
// move at once, so the other three keep the body up.
type Stand struct {
	solver *kinematics.Solver
	dfc    float64
	height float64

	allAtOnce bool
	highLift  bool

	initialized bool
	curves      [kinematics.NumLegs][3]math3d.Vector3
	group       []int
	progress    float64
	passes      int
}

func NewStand(s *kinematics.Solver, dfc, height float64) *Stand {
	return &Stand{
		solver: s,
		dfc:    dfc,
		height: height,
	}
}

// Reset starts a new transition. allAtOnce moves every leg together, which is
// only safe when the body is on the ground. highLift raises the feet further.
func (s *Stand) Reset(allAtOnce, highLift bool) {
	s.initialized = false
	s.allAtOnce = allAtOnce
	s.highLift = highLift
	s.group = nil
	s.progress = 0
	s.passes = 0
}

// SetHeight sets the Z of the standing position. It can change at any time;
// the curves are bent towards it.
func (s *Stand) SetHeight(z float64) {
	s.height = z
}

func (s *Stand) End() math3d.Vector3 {
	return math3d.Vector3{X: s.dfc, Y: 0, Z: s.height}
}

func (s *Stand) Done() bool {
	return s.passes >= standPasses
}

// Moving returns the legs in the current group. Empty when moving all at once
// or when done.
func (s *Stand) Moving() []int {
	if s.Done() {
		return nil
	}

	return s.group
}

func (s *Stand) init() {
	s.initialized = true
	end := s.End()

	for i := range s.curves {
		start := s.solver.Position(i)
		mid := math3d.Vector3{
			X: (start.X + end.X) / 1.5,
			Y: (start.Y + end.Y) / 1.5,
			Z: (start.Z + end.Z) / 2,
		}

		if math.Abs(mid.Z-end.Z) < 50 {
			mid.Z += standDragLift
		}

		if s.highLift {
			mid.Z += standHighLift
		}

		s.curves[i] = [3]math3d.Vector3{start, mid, end}
	}

	if !s.allAtOnce {
		s.group = s.highestLegs(3)
	}
}

// highestLegs picks up to n legs which aren't already standing, highest first.
func (s *Stand) highestLegs(n int) []int {
	end := s.End()
	picked := make([]int, 0, n)

	for len(picked) < n {
		best := -1
		for i := 0; i < kinematics.NumLegs; i++ {
			if contains(picked, i) {
				continue
			}

			p := s.solver.Position(i)
			if p.Distance(end) < standTolerance {
				continue
			}

			if best == -1 || p.Z > s.solver.Position(best).Z {
				best = i
			}
		}

		if best == -1 {
			break
		}

		picked = append(picked, best)
	}

	return picked
}

// Update moves the legs one step further. Returns true once every leg is
// standing.
func (s *Stand) Update() (bool, error) {
	if !s.initialized {
		s.init()
	}

	end := s.End()
	for i := range s.curves {
		s.curves[i][2] = end
	}

	var errs error

	if !s.Done() {
		s.progress += standStep
		t := s.progress / standCycle
		if t > 1 {
			t = 1
		}

		if s.allAtOnce {
			for i := range s.curves {
				errs = multierr.Append(errs, s.solver.MoveTo(i, math3d.Bezier(s.curves[i][:], t)))
			}

			if s.progress > standCycle {
				s.passes = standPasses
			}

		} else {
			for _, i := range s.group {
				errs = multierr.Append(errs, s.solver.MoveTo(i, math3d.Bezier(s.curves[i][:], t)))
			}

			if s.progress > standCycle {
				s.progress = 0
				s.passes++
				if !s.Done() {
					s.group = s.highestLegs(3)
				}
			}
		}

		if !s.Done() {
			return false, errs
		}
	}

	// Hold, following any change in height.
	for i := range s.curves {
		errs = multierr.Append(errs, s.solver.MoveTo(i, end))
	}

	return true, errs
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
