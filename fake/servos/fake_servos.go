package servos

import (
	"github.com/adammck/hexwalk/kinematics"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "fake/servos",
})

// Move is a single call to SetLegAngles.
type Move struct {
	Leg    int
	Angles kinematics.Angles
}

// Recorder is an actuator which remembers everything it was asked to do,
// instead of moving any servos.
type Recorder struct {
	Moves    []Move
	Last     [kinematics.NumLegs]kinematics.Angles
	Attached bool
	Attaches int
	Detaches int

	// Err, if set, is returned from every call.
	Err error
}

func New() *Recorder {
	return &Recorder{Attached: true}
}

func (r *Recorder) SetLegAngles(leg int, a kinematics.Angles) error {
	if r.Err != nil {
		return r.Err
	}

	log.Debugf("leg=%d angles=%s", leg, a)
	r.Moves = append(r.Moves, Move{Leg: leg, Angles: a})
	r.Last[leg] = a
	return nil
}

func (r *Recorder) Attach() error {
	if r.Err != nil {
		return r.Err
	}

	r.Attached = true
	r.Attaches++
	return nil
}

func (r *Recorder) Detach() error {
	if r.Err != nil {
		return r.Err
	}

	r.Attached = false
	r.Detaches++
	return nil
}

// MovesFor returns the moves sent to a single leg.
func (r *Recorder) MovesFor(leg int) []Move {
	var out []Move
	for _, m := range r.Moves {
		if m.Leg == leg {
			out = append(out, m)
		}
	}

	return out
}

// Reset forgets all recorded moves.
func (r *Recorder) Reset() {
	r.Moves = nil
}
