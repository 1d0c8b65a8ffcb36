package legs

import (
	"fmt"

	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"github.com/adammck/hexwalk/utils"
	"go.uber.org/multierr"
)

type AttackKind int

const (

	// Slam rears up on the back four legs and brings the middle two down hard.
	Slam AttackKind = iota

	// QuickStrike raises a single leg and strikes forwards with it.
	QuickStrike
)

func (k AttackKind) String() string {
	switch k {
	case Slam:
		return "slam"
	case QuickStrike:
		return "quick-strike"
	}

	return fmt.Sprintf("AttackKind(%d)", int(k))
}

const (

	// Fraction of the slam which is spent raising the striking legs, and the
	// point at which they hit the ground.
	slamRaiseEnd = 0.70
	slamLandEnd  = 0.95

	// Frames to hold still after the slam lands.
	slamHoldFrames = 10

	quickStrikeFrames = 20
	quickStrikeHeight = 200.0
	quickStrikeReach  = 50.0
)

type attackPhase int

const (
	attackPlace attackPhase = iota
	attackLeap
	attackHold
	attackStrike
	attackDone
)

// Attack plays a scripted animation, one frame per tick. It can't be
// interrupted; the state machine waits for it to finish.
type Attack struct {
	solver *kinematics.Solver

	// Per-leg signs, as used by the gait.
	strideSigns   [kinematics.NumLegs]float64
	rotationSigns [kinematics.NumLegs]float64

	// Speed scales the number of frames in each phase. Lower is slower.
	Speed     int
	StrikeLeg int

	// OnSlam, if set, is called once per slam, halfway through.
	OnSlam func()

	kind    AttackKind
	phase   attackPhase
	frame   int
	starts  [kinematics.NumLegs]math3d.Vector3
	slammed bool
}

func NewAttack(s *kinematics.Solver, strideSigns, rotationSigns [kinematics.NumLegs]float64) *Attack {
	return &Attack{
		solver:        s,
		strideSigns:   strideSigns,
		rotationSigns: rotationSigns,
		Speed:         25,
		StrikeLeg:     2,
		phase:         attackDone,
	}
}

// Reset starts a new attack of the given kind from the current foot positions.
func (a *Attack) Reset(kind AttackKind) {
	a.kind = kind
	a.frame = 0
	a.slammed = false
	a.snapshot()

	if kind == QuickStrike {
		a.phase = attackStrike
	} else {
		a.phase = attackPlace
	}
}

func (a *Attack) Kind() AttackKind {
	return a.kind
}

func (a *Attack) Done() bool {
	return a.phase == attackDone
}

// Slammed returns true once the slam has hit, in the current attack.
func (a *Attack) Slammed() bool {
	return a.slammed
}

func (a *Attack) snapshot() {
	a.starts = a.solver.Positions()
}

func (a *Attack) placeFrames() int {
	return int(float64(a.Speed) * 0.4)
}

func (a *Attack) leapFrames() int {
	return int(float64(a.Speed) * 1.2)
}

// Update plays the next frame. Returns true once the attack is over.
func (a *Attack) Update() (bool, error) {
	var errs error

	switch a.phase {
	case attackPlace:
		n := a.placeFrames()
		if a.frame >= n {
			a.snapshot()
			a.phase = attackLeap
			a.frame = 0
			return a.Update()
		}

		t := float64(a.frame) / float64(n)
		for leg := 0; leg < kinematics.NumLegs; leg++ {
			errs = multierr.Append(errs, a.solver.MoveTo(leg, a.placementPoint(leg, t)))
		}

	case attackLeap:
		n := a.leapFrames()
		if a.frame >= n {
			a.phase = attackHold
			a.frame = 0
			return a.Update()
		}

		t := float64(a.frame) / float64(n)
		for _, leg := range []int{0, 1, 4, 5} {
			errs = multierr.Append(errs, a.solver.MoveTo(leg, a.leapPoint(leg, t)))
		}

		for _, leg := range []int{2, 3} {
			errs = multierr.Append(errs, a.solver.MoveTo(leg, a.slamPoint(leg, t)))
		}

		if t >= 0.5 && !a.slammed {
			a.slammed = true
			log.Info("slam!")
			if a.OnSlam != nil {
				a.OnSlam()
			}
		}

	case attackHold:
		if a.frame >= slamHoldFrames {
			a.snapshot()
			a.phase = attackDone
			return true, nil
		}

	case attackStrike:
		if a.frame >= quickStrikeFrames {
			a.phase = attackDone
			return true, nil
		}

		t := float64(a.frame) / quickStrikeFrames
		errs = multierr.Append(errs, a.solver.MoveTo(a.StrikeLeg, a.strikePoint(t)))

	case attackDone:
		return true, nil
	}

	a.frame++
	return false, errs
}

// placementPoint moves the feet into a wide stance, ready to leap.
func (a *Attack) placementPoint(leg int, t float64) math3d.Vector3 {
	var off math3d.Vector3

	switch leg {
	case 0, 5:
		off = math3d.Vector3{X: 40}
	case 1:
		off = math3d.Vector3{X: -70, Z: -60}
	case 4:
		off = math3d.Vector3{X: -70, Z: -50}
	}

	x := a.starts[leg].X + off.X
	end := math3d.Vector3{X: x, Y: -50 * a.strideSigns[leg], Z: -50 + off.Z}.
		RotateAround(55*a.rotationSigns[leg], math3d.Vector2{X: x})

	return math3d.Bezier([]math3d.Vector3{a.starts[leg], end}, t)
}

// leapPoint throws the body up and back on the outer legs. The front legs arc
// less, so the body tips backwards.
func (a *Attack) leapPoint(leg int, t float64) math3d.Vector3 {
	start := a.starts[leg]
	x := start.X

	end := math3d.Vector3{X: x - 20, Y: start.Y + (160 * a.strideSigns[leg]), Z: -80}.
		RotateAround(55*a.rotationSigns[leg], math3d.Vector2{X: x})

	mid := math3d.Lerp(start, end, 0.5).Add(math3d.Vector3{Z: -300})
	if leg == 0 || leg == 5 {
		mid.Z += 180
	}

	return math3d.Bezier([]math3d.Vector3{start, mid, end}, t)
}

// slamPoint raises the striking legs high, then brings them down.
func (a *Attack) slamPoint(leg int, t float64) math3d.Vector3 {
	r := a.rotationSigns[leg]
	rot := func(v math3d.Vector3, deg float64) math3d.Vector3 {
		return v.RotateAround(deg*r, math3d.Vector2{})
	}

	top := rot(math3d.Vector3{X: 0, Y: 0, Z: 300}, -35)
	land := rot(math3d.Vector3{X: 250, Y: 0, Z: 0}, -35)

	switch {
	case t < slamRaiseEnd:
		return math3d.Bezier([]math3d.Vector3{
			a.starts[leg],
			rot(math3d.Vector3{X: 200, Y: 0, Z: 200}, -40),
			top,
		}, utils.MapRange(t, 0, slamRaiseEnd, 0, 1))

	case t < slamLandEnd:
		return math3d.Bezier([]math3d.Vector3{
			top,
			rot(math3d.Vector3{X: 300, Y: 0, Z: 300}, -35),
			rot(math3d.Vector3{X: 325, Y: 0, Z: 50}, -35),
			land,
		}, utils.MapRange(t, slamRaiseEnd, slamLandEnd, 0, 1))
	}

	return land
}

// strikePoint raises the striking leg straight up, then brings it down further
// out.
func (a *Attack) strikePoint(t float64) math3d.Vector3 {
	start := a.starts[a.StrikeLeg]

	if t < 0.5 {
		return math3d.Vector3{X: start.X, Y: start.Y, Z: t * 2 * quickStrikeHeight}
	}

	return math3d.Vector3{
		X: start.X + quickStrikeReach,
		Y: start.Y,
		Z: (1 - ((t - 0.5) * 2)) * quickStrikeHeight,
	}
}
