package gait

import (
	"errors"
	"fmt"
)

// ErrUnknownGait is returned when selecting a gait by an index which doesn't
// name one.
var ErrUnknownGait = errors.New("unknown gait")

type Kind int

const (
	Tripod Kind = iota
	Ripple
	Wave
	Quad
	Bipod
	Hop
)

var kindNames = [...]string{
	Tripod: "tripod",
	Ripple: "ripple",
	Wave:   "wave",
	Quad:   "quad",
	Bipod:  "bipod",
	Hop:    "hop",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Profile is a walking pattern. Profiles are never mutated; the engine is
// handed a whole new one to change gait.
type Profile struct {
	Kind Kind

	// Where each leg starts in the cycle, as a fraction of the cycle. Legs with
	// the same phase lift together.
	Phases [numLegs]float64

	// Fraction of the cycle spent with the foot on the ground, pushing. The rest
	// is spent lifting the foot and carrying it forwards.
	PushFraction float64

	SpeedMultiplier  float64
	StrideMultiplier float64
	LiftMultiplier   float64

	// Caps, in mm for the stride and cycle units per tick for the speed. Both are
	// scaled by the global speed multiplier.
	MaxStride float64
	MaxSpeed  float64
}

// Profiles holds every gait, indexed by Kind.
var Profiles = [...]Profile{
	Tripod: {
		Kind:             Tripod,
		Phases:           [numLegs]float64{0, 1.0 / 2, 0, 1.0 / 2, 0, 1.0 / 2},
		PushFraction:     3.1 / 6,
		SpeedMultiplier:  1.0,
		StrideMultiplier: 1.2,
		LiftMultiplier:   1.1,
		MaxStride:        240,
		MaxSpeed:         200,
	},
	Ripple: {
		Kind:             Ripple,
		Phases:           [numLegs]float64{0, 4.0 / 6, 2.0 / 6, 5.0 / 6, 1.0 / 6, 3.0 / 6},
		PushFraction:     3.2 / 6,
		SpeedMultiplier:  1.0,
		StrideMultiplier: 1.3,
		LiftMultiplier:   1.1,
		MaxStride:        220,
		MaxSpeed:         200,
	},
	Wave: {
		Kind:             Wave,
		Phases:           [numLegs]float64{0, 1.0 / 6, 2.0 / 6, 5.0 / 6, 4.0 / 6, 3.0 / 6},
		PushFraction:     4.9 / 6,
		SpeedMultiplier:  0.40,
		StrideMultiplier: 2.0,
		LiftMultiplier:   1.2,
		MaxStride:        150,
		MaxSpeed:         160,
	},
	Quad: {
		Kind:             Quad,
		Phases:           [numLegs]float64{0, 1.0 / 3, 2.0 / 3, 0, 1.0 / 3, 2.0 / 3},
		PushFraction:     4.1 / 6,
		SpeedMultiplier:  1.0,
		StrideMultiplier: 1.2,
		LiftMultiplier:   1.1,
		MaxStride:        220,
		MaxSpeed:         200,
	},
	Bipod: {
		Kind:             Bipod,
		Phases:           [numLegs]float64{0, 1.0 / 3, 2.0 / 3, 0, 1.0 / 3, 2.0 / 3},
		PushFraction:     2.1 / 6,
		SpeedMultiplier:  4.0,
		StrideMultiplier: 1.0,
		LiftMultiplier:   1.8,
		MaxStride:        230,
		MaxSpeed:         130,
	},
	Hop: {
		Kind:             Hop,
		Phases:           [numLegs]float64{0, 0, 0, 0, 0, 0},
		PushFraction:     3.0 / 6,
		SpeedMultiplier:  1.0,
		StrideMultiplier: 1.6,
		LiftMultiplier:   2.5,
		MaxStride:        240,
		MaxSpeed:         200,
	},
}

// ByIndex returns the profile selected by a gait index (0-5), as sent by the
// controller.
func ByIndex(i int) (Profile, error) {
	if i < 0 || i >= len(Profiles) {
		return Profile{}, fmt.Errorf("%w: %d", ErrUnknownGait, i)
	}

	return Profiles[i], nil
}
