package legs

import (
	fakeservos "github.com/adammck/hexwalk/fake/servos"
	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
)

func newSolver() (*kinematics.Solver, *fakeservos.Recorder) {
	r := fakeservos.New()
	return kinematics.NewSolver(kinematics.DefaultGeometry, kinematics.BaseOffset, r), r
}

func placeAll(s *kinematics.Solver, v math3d.Vector3) {
	for i := 0; i < kinematics.NumLegs; i++ {
		s.SetPosition(i, v)
	}
}

// movedLegs returns the distinct legs which were sent angles.
func movedLegs(r *fakeservos.Recorder) map[int]bool {
	out := map[int]bool{}
	for _, m := range r.Moves {
		out[m.Leg] = true
	}

	return out
}
