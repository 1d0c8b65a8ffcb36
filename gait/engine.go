package gait

import (
	"fmt"
	"math"

	"github.com/adammck/hexwalk/math3d"
	"github.com/adammck/hexwalk/utils"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "gait",
})

// How far (in mm) the foot swings outwards in the middle of a turn, to keep it
// clear of its neighbours.
const rotateBulge = 40.0

type LegState int

const (
	Reset LegState = iota
	Propelling
	Lifting
	Standing
)

func (s LegState) String() string {
	switch s {
	case Reset:
		return "reset"
	case Propelling:
		return "propelling"
	case Lifting:
		return "lifting"
	case Standing:
		return "standing"
	}

	return fmt.Sprintf("LegState(%d)", int(s))
}

// Engine generates foot positions for walking. Each leg has its own position
// in the cycle, but every leg advances by the same amount each tick, so the
// offsets between them (which define the gait) never drift.
type Engine struct {
	params  Params
	profile Profile

	progress [numLegs]float64
	states   [numLegs]LegState

	// Where each foot was when it last changed state. The curves start here, so
	// there's no jump when switching between them.
	starts [numLegs]math3d.Vector3

	globalSpeed    float64
	globalRotation float64
}

func NewEngine(p Params) *Engine {
	e := &Engine{
		params:         p,
		globalSpeed:    0.55,
		globalRotation: 0.55,
	}

	e.profile = Profiles[Tripod]
	e.restorePhases()
	return e
}

func (e *Engine) Profile() Profile {
	return e.profile
}

func (e *Engine) Params() Params {
	return e.params
}

// SetGait switches to a new profile. If it differs from the current one, every
// leg is reset to the profile's phase. Returns true if so.
func (e *Engine) SetGait(p Profile) bool {
	if p.Kind == e.profile.Kind {
		return false
	}

	log.Infof("gait=%s from=%s", p.Kind, e.profile.Kind)
	e.profile = p
	e.restorePhases()
	return true
}

// SetSpeed sets the global speed and rotation multipliers from the speed
// slider (0-100).
func (e *Engine) SetSpeed(slider float64) {
	slider = utils.Constrain(slider, 0, 100)
	e.globalSpeed = (slider + 10) * 0.01
	e.globalRotation = utils.MapRange(slider, 0, 100, 40, 130) * 0.01
}

func (e *Engine) GlobalSpeed() float64 {
	return e.globalSpeed
}

func (e *Engine) GlobalRotation() float64 {
	return e.globalRotation
}

// SetHeight sets the distance (on Z) from the coxa to the ground.
func (e *Engine) SetHeight(dfg float64) {
	e.params.DistanceFromGround = dfg
}

// Reset returns every leg to the start of its phase, and takes the given
// positions as the start of the next curves. Called when walking begins.
func (e *Engine) Reset(current [numLegs]math3d.Vector3) {
	e.restorePhases()
	e.starts = current
}

func (e *Engine) restorePhases() {
	for i := range e.progress {
		e.progress[i] = e.profile.Phases[i] * e.params.CycleLength
		e.states[i] = Reset
	}
}

// Progress returns the position of a leg in the cycle, from zero to the cycle
// length.
func (e *Engine) Progress(leg int) float64 {
	return e.progress[leg]
}

// Phase returns the progress of a leg normalized to [0, 1).
func (e *Engine) Phase(leg int) float64 {
	return e.progress[leg] / e.params.CycleLength
}

func (e *Engine) LegState(leg int) LegState {
	return e.states[leg]
}

// Delta returns how far every leg advances through the cycle for the given
// input.
func (e *Engine) Delta(translation math3d.Vector2, rotation float64) float64 {
	amount := math.Max(translation.Magnitude(), math.Abs(rotation))
	d := amount * e.profile.SpeedMultiplier * e.params.ProgressScale * e.globalSpeed
	return utils.Constrain(d, 0, e.profile.MaxSpeed*e.globalSpeed)
}

// Update returns the next position of every foot, given where they are now,
// and advances the cycle. Translation and rotation are normalized (-1 to 1).
func (e *Engine) Update(current [numLegs]math3d.Vector3, translation math3d.Vector2, rotation float64) [numLegs]math3d.Vector3 {
	var out [numLegs]math3d.Vector3

	for leg := range out {
		out[leg] = e.point(leg, current[leg], translation, rotation)
	}

	d := e.Delta(translation, rotation)
	for i := range e.progress {
		e.progress[i] = math.Mod(e.progress[i]+d, e.params.CycleLength)
	}

	return out
}

// enter snapshots the current position of the foot when it changes state.
func (e *Engine) enter(leg int, s LegState, current math3d.Vector3) {
	if e.states[leg] != s {
		e.starts[leg] = current
		e.states[leg] = s
	}
}

func (e *Engine) point(leg int, current math3d.Vector3, translation math3d.Vector2, rotation float64) math3d.Vector3 {
	p := e.params
	pf := e.profile

	var v math3d.Vector2
	var rotStride float64

	if p.DynamicStride {
		v = translation.MultiplyByScalar(p.StrideScale)
		rotStride = rotation * p.RotationScale * e.globalRotation
	} else {
		v = translation.Unit().MultiplyByScalar(p.FixedStride)
		rotStride = p.FixedStride
		if rotation < 0 {
			rotStride = -p.FixedStride
		}
	}

	// Stride multipliers only apply forwards and backwards.
	v.Y = utils.Constrain(v.Y*pf.StrideMultiplier, -pf.MaxStride/2, pf.MaxStride/2)
	v = v.MultiplyByScalar(e.globalSpeed)

	ss := p.StrideSigns[leg]
	angle := p.PlacementAngle * p.RotationSigns[leg]
	pivot := math3d.Vector2{X: p.DistanceFromCenter}
	dfc := p.DistanceFromCenter
	dfg := p.DistanceFromGround
	lift := p.LiftHeight * pf.LiftMultiplier

	var straight, rotate math3d.Vector3
	t := e.Phase(leg)

	if t < pf.PushFraction {
		e.enter(leg, Propelling, current)
		start := e.starts[leg]
		lt := utils.MapRange(t, 0, pf.PushFraction, 0, 1)

		straight = math3d.Bezier([]math3d.Vector3{
			start,
			math3d.Vector3{X: (v.X * ss) + dfc, Y: -v.Y * ss, Z: dfg}.RotateAround(angle, pivot),
		}, lt)

		rotate = math3d.Bezier([]math3d.Vector3{
			start,
			{X: dfc + rotateBulge, Y: 0, Z: dfg},
			{X: dfc, Y: rotStride, Z: dfg},
		}, lt)

	} else {
		e.enter(leg, Lifting, current)
		start := e.starts[leg]
		lt := utils.MapRange(t, pf.PushFraction, 1, 0, 1)
		up := start.Add(math3d.Vector3{Z: lift})

		straight = math3d.Bezier([]math3d.Vector3{
			start,
			up,
			math3d.Vector3{X: (-v.X * ss) + dfc, Y: (v.Y + p.StrideOvershoot) * ss, Z: dfg + p.LandHeight}.RotateAround(angle, pivot),
			math3d.Vector3{X: (-v.X * ss) + dfc, Y: v.Y * ss, Z: dfg}.RotateAround(angle, pivot),
		}, lt)

		rotate = math3d.Bezier([]math3d.Vector3{
			start,
			up,
			{X: dfc + rotateBulge, Y: 0, Z: dfg + lift},
			{X: dfc, Y: -(rotStride + p.StrideOvershoot), Z: dfg + p.LandHeight},
			{X: dfc, Y: -rotStride, Z: dfg},
		}, lt)
	}

	fwd := translation.Magnitude()
	turn := math.Abs(rotation)
	sum := fwd + turn

	// Nothing to blend, so follow the straight path.
	if sum < 1e-9 {
		return straight
	}

	return straight.MultiplyByScalar(fwd).Add(rotate.MultiplyByScalar(turn)).DivideByScalar(sum)
}
