package kinematics

import (
	"fmt"

	"github.com/adammck/hexwalk/math3d"
)

// UnreachableError is returned when a foot target lies further from the coxa
// origin than the fully extended leg. The leg isn't moved.
type UnreachableError struct {
	Leg      int
	Target   math3d.Vector3
	Distance float64
	MaxReach float64
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("leg %d can't reach %s (distance=%0.2f, reach=%0.2f)", e.Leg, e.Target, e.Distance, e.MaxReach)
}

// SingularError is returned when a foot target lies on the femur joint itself,
// where the femur angle is undefined. The leg isn't moved.
type SingularError struct {
	Leg    int
	Target math3d.Vector3
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("leg %d target %s is on the femur joint", e.Leg, e.Target)
}

// InvalidOffsetCountError is returned when an offset list doesn't contain
// exactly one trim per joint. The list is still normalized.
type InvalidOffsetCountError struct {
	Len int
}

func (e *InvalidOffsetCountError) Error() string {
	return fmt.Sprintf("expected %d offsets, got %d", NumOffsets, e.Len)
}

type IndexKind string

const (
	IndexLeg   IndexKind = "leg"
	IndexJoint IndexKind = "joint"
)

// InvalidIndexError is returned by operations given a leg or joint index out of
// range. The operation is a no-op.
type InvalidIndexError struct {
	Kind  IndexKind
	Value int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid %s index: %d", e.Kind, e.Value)
}

func checkLeg(leg int) error {
	if leg < 0 || leg >= NumLegs {
		return &InvalidIndexError{Kind: IndexLeg, Value: leg}
	}

	return nil
}

func checkJoint(joint int) error {
	if joint < 0 || joint >= JointsPerLeg {
		return &InvalidIndexError{Kind: IndexJoint, Value: joint}
	}

	return nil
}
