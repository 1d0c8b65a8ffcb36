package legs

import (
	"fmt"
	"math"
	"time"

	"github.com/adammck/hexwalk"
	"github.com/adammck/hexwalk/gait"
	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type State string

const (
	sInitialize State = "Initialize"
	sStand      State = "Stand"
	sWalk       State = "Walk"
	sCalibrate  State = "Calibrate"
	sSleep      State = "Sleep"
	sAttack     State = "Attack"

	// Stick deflection needed to start walking, and below which walking stops.
	// They differ so that a stick resting near the threshold doesn't flap.
	walkStart = 0.1
	walkStop  = 0.05

	// Rate at which the body height follows the input.
	heightRate = 0.05
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "legs",
})

type Options struct {
	AttackSpeed int
	AttackKind  AttackKind

	// Leg used by the quick strike.
	StrikeLeg int

	SleepPose       math3d.Vector3
	CalibrationPose math3d.Vector3

	// Distance (in mm) which the height input raises or lowers the body.
	HeightRange float64
}

func DefaultOptions(g kinematics.Geometry) Options {
	return Options{
		AttackSpeed:     25,
		AttackKind:      Slam,
		StrikeLeg:       2,
		SleepPose:       DefaultSleepPose,
		CalibrationPose: CalibrationPose(g),
		HeightRange:     30,
	}
}

// Legs is the locomotion component. It owns the leg solver, and decides each
// tick which controller gets to move the feet.
type Legs struct {
	solver *kinematics.Solver
	engine *gait.Engine
	opts   Options

	stand     *Stand
	walk      *Walk
	calibrate *Calibrate
	sleep     *Sleep
	attack    *Attack

	State        State
	prev         State
	stateCounter int

	// Current and base Z of the standing feet. The current height follows the
	// input smoothly.
	height     float64
	baseHeight float64
}

func New(s *kinematics.Solver, e *gait.Engine, store kinematics.OffsetStore, opts Options) *Legs {
	p := e.Params()

	a := NewAttack(s, p.StrideSigns, p.RotationSigns)
	a.Speed = opts.AttackSpeed
	a.StrikeLeg = opts.StrikeLeg

	return &Legs{
		solver:     s,
		engine:     e,
		opts:       opts,
		stand:      NewStand(s, p.DistanceFromCenter, p.DistanceFromGround),
		walk:       NewWalk(s, e),
		calibrate:  NewCalibrate(s, store, opts.CalibrationPose),
		sleep:      NewSleep(s, opts.SleepPose),
		attack:     a,
		State:      sInitialize,
		height:     p.DistanceFromGround,
		baseHeight: p.DistanceFromGround,
	}
}

// OnSlam sets a function to be called when a slam attack lands.
func (l *Legs) OnSlam(f func()) {
	l.attack.OnSlam = f
}

// Calibrator exposes the offset operations, for the CLI.
func (l *Legs) Calibrator() *Calibrate {
	return l.calibrate
}

// Boot loads the stored offsets, and assumes that the feet are folded up in
// the sleep pose, since that's where they were left at shutdown.
func (l *Legs) Boot() error {
	err := l.calibrate.LoadOffsets()
	if err != nil {
		log.Warnf("using zero offsets: %s", err)
	}

	for i := 0; i < kinematics.NumLegs; i++ {
		err := l.solver.SetPosition(i, l.opts.SleepPose)
		if err != nil {
			return fmt.Errorf("%w (while setting initial position)", err)
		}
	}

	return nil
}

// Sleeping returns true when the legs are folded up and the servos detached.
// It's safe to exit then.
func (l *Legs) Sleeping() bool {
	return l.State == sSleep && l.sleep.Sleeping()
}

func (l *Legs) SetState(s State) error {
	log.WithField("from", l.State).Infof("state=%v", s)

	var err error
	if l.State == sCalibrate && s != sCalibrate {
		err = l.calibrate.SaveOffsets()
	}

	l.prev = l.State
	l.State = s
	l.stateCounter = 0

	switch s {
	case sStand:
		ground := l.prev == sInitialize || l.prev == sCalibrate || l.prev == sAttack || l.prev == sSleep
		high := l.prev == sAttack || l.prev == sSleep
		l.stand.Reset(ground, high)

	case sWalk:
		l.walk.Reset()

	case sCalibrate:
		l.calibrate.Reset()

	case sSleep:
		l.sleep.Reset()

	case sAttack:
		l.attack.Reset(l.opts.AttackKind)
	}

	return err
}

func moving(in hexapod.Input, threshold float64) bool {
	return math.Abs(in.Translation.X) > threshold ||
		math.Abs(in.Translation.Y) > threshold ||
		math.Abs(in.Rotation) > threshold
}

func (l *Legs) Tick(now time.Time, state *hexapod.State) error {
	l.stateCounter++
	in := state.Input

	var errs error

	p, err := gait.ByIndex(in.Gait)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else {
		l.engine.SetGait(p)
	}

	l.engine.SetSpeed(in.Speed)

	target := l.baseHeight + (in.Height * l.opts.HeightRange)
	l.height = math3d.LerpFloat(l.height, target, heightRate)
	l.engine.SetHeight(l.height)
	l.stand.SetHeight(l.height)

	// Attacks can't be interrupted, not even to sleep.
	if l.State != sAttack {
		if state.Shutdown || in.Sleep {
			if l.State != sSleep {
				errs = multierr.Append(errs, l.SetState(sSleep))
			}
		} else if in.Calibrate && l.State != sCalibrate {
			errs = multierr.Append(errs, l.SetState(sCalibrate))
		}
	}

	switch l.State {
	case sInitialize:
		errs = multierr.Append(errs, l.SetState(sStand))

	case sStand:
		_, err := l.stand.Update()
		errs = multierr.Append(errs, err)

		if in.Attack {
			errs = multierr.Append(errs, l.SetState(sAttack))
		} else if moving(in, walkStart) {
			errs = multierr.Append(errs, l.SetState(sWalk))
		}

	case sWalk:
		if in.Attack {
			errs = multierr.Append(errs, l.SetState(sAttack))
		} else if !moving(in, walkStop) {
			errs = multierr.Append(errs, l.SetState(sStand))
		} else {
			errs = multierr.Append(errs, l.walk.Update(in.Translation, in.Rotation))
		}

	case sCalibrate:
		if !in.Calibrate {
			errs = multierr.Append(errs, l.SetState(sStand))
			break
		}

		_, err := l.calibrate.Update(in.Offsets)
		errs = multierr.Append(errs, err)

	case sSleep:
		_, err := l.sleep.Update()
		errs = multierr.Append(errs, err)

		if !in.Sleep && !state.Shutdown {
			_, err := l.sleep.WakeUp()
			if err != nil {
				errs = multierr.Append(errs, err)
				break
			}

			errs = multierr.Append(errs, l.SetState(sStand))
		}

	case sAttack:
		done, err := l.attack.Update()
		errs = multierr.Append(errs, err)

		if done {
			errs = multierr.Append(errs, l.SetState(sStand))
		}

	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown state: %#v", l.State))
	}

	return errs
}
