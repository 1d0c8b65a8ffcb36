package legs

import (
	"github.com/adammck/hexwalk/gait"
	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"go.uber.org/multierr"
)

// Walk moves the feet along the paths generated by the gait engine.
type Walk struct {
	solver *kinematics.Solver
	engine *gait.Engine
}

func NewWalk(s *kinematics.Solver, e *gait.Engine) *Walk {
	return &Walk{solver: s, engine: e}
}

// Reset restarts the gait from the current foot positions.
func (w *Walk) Reset() {
	w.engine.Reset(w.solver.Positions())
}

func (w *Walk) Update(translation math3d.Vector2, rotation float64) error {
	next := w.engine.Update(w.solver.Positions(), translation, rotation)

	var errs error
	for i, p := range next {
		errs = multierr.Append(errs, w.solver.MoveTo(i, p))
	}

	return errs
}
