package legs

import (
	"fmt"
	"io"

	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"github.com/adammck/hexwalk/utils"
	"go.uber.org/multierr"
)

const (

	// Legs are raised to this height before heading to the calibration pose, so
	// they don't drag across the ground.
	calibrateLiftZ    = -20.0
	calibrateLiftRate = 0.03

	// Distance per axis per tick while moving to the pose, and how close each
	// foot must get.
	calibrateStep      = 5.0
	calibrateTolerance = 5.0
)

// CalibrationPose returns the foot position at which the joints sit at known
// angles, so misaligned servos are easy to see.
func CalibrationPose(g kinematics.Geometry) math3d.Vector3 {
	return math3d.Vector3{X: g.Coxa + 43, Y: 0, Z: g.Femur + 185}
}

// Calibrate moves the legs into the calibration pose, and manages the trims.
type Calibrate struct {
	solver *kinematics.Solver
	store  kinematics.OffsetStore
	target math3d.Vector3

	lifted   bool
	previous kinematics.Offsets
}

func NewCalibrate(s *kinematics.Solver, store kinematics.OffsetStore, target math3d.Vector3) *Calibrate {
	return &Calibrate{
		solver: s,
		store:  store,
		target: target,
	}
}

func (c *Calibrate) Reset() {
	c.lifted = false
	c.previous = c.solver.RawOffsets()
}

// Lifted returns true once every leg has been raised, and the legs are moving
// towards the pose.
func (c *Calibrate) Lifted() bool {
	return c.lifted
}

// Update moves the legs one step. The offsets, if not nil, are applied when
// they differ from the last ones applied. Returns true once every leg is in
// the pose.
func (c *Calibrate) Update(offsets []float64) (bool, error) {
	var errs error

	if !c.lifted {
		up := true

		for i := 0; i < kinematics.NumLegs; i++ {
			p := c.solver.Position(i)
			if p.Z < calibrateLiftZ {
				up = false
				p.Z = math3d.LerpFloat(p.Z, calibrateLiftZ+2, calibrateLiftRate)
				errs = multierr.Append(errs, c.solver.MoveTo(i, p))
			}
		}

		if up {
			log.Info("legs lifted, moving to calibration pose")
			c.lifted = true
		}

		return false, errs
	}

	if offsets != nil {
		o, err := kinematics.NormalizeOffsets(offsets)
		errs = multierr.Append(errs, err)

		if o != c.previous {
			log.Infof("applying offsets: %v", o)
			c.previous = o
			c.solver.SetRawOffsets(o[:])
		}
	}

	done := true
	for i := 0; i < kinematics.NumLegs; i++ {
		p := c.solver.Position(i)
		next := math3d.Vector3{
			X: utils.StepTowards(p.X, c.target.X, calibrateStep),
			Y: utils.StepTowards(p.Y, c.target.Y, calibrateStep),
			Z: utils.StepTowards(p.Z, c.target.Z, calibrateStep),
		}

		errs = multierr.Append(errs, c.solver.MoveTo(i, next))
		if next.Distance(c.target) > calibrateTolerance {
			done = false
		}
	}

	return done, errs
}

// AdjustOffset nudges the trim of a single joint by delta degrees.
func (c *Calibrate) AdjustOffset(leg, joint int, delta float64) error {
	v, err := c.solver.AdjustOffset(leg, joint, delta)
	if err != nil {
		return err
	}

	log.Infof("leg=%d joint=%d offset=%+.1f", leg, joint, v)
	return nil
}

func (c *Calibrate) SaveOffsets() error {
	if c.store == nil {
		return nil
	}

	o := c.solver.RawOffsets()
	err := c.store.SaveOffsets(o)
	if err != nil {
		return fmt.Errorf("%w (while saving offsets)", err)
	}

	log.Infof("saved offsets: %v", o)
	return nil
}

// LoadOffsets replaces the trims with those in the store. Lists of the wrong
// length are normalized, and the error is returned alongside.
func (c *Calibrate) LoadOffsets() error {
	if c.store == nil {
		return nil
	}

	raw, err := c.store.LoadOffsets()
	if err != nil {
		return fmt.Errorf("%w (while loading offsets)", err)
	}

	o, err := kinematics.NormalizeOffsets(raw)
	c.solver.SetRawOffsets(o[:])
	log.Infof("loaded offsets: %v", o)
	return err
}

// ResetOffsets sets every trim to zero.
func (c *Calibrate) ResetOffsets() {
	c.solver.SetRawOffsets(make([]float64, kinematics.NumOffsets))
}

func (c *Calibrate) PrintOffsets(w io.Writer) error {
	return c.solver.RawOffsets().Print(w)
}
