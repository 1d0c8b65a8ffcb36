package kinematics

import (
	"fmt"
)

const (
	NumLegs      = 6
	JointsPerLeg = 3
	NumOffsets   = NumLegs * JointsPerLeg
)

// Joint indices within a leg, proximal to distal.
const (
	Coxa = iota
	Femur
	Tibia
)

// Geometry holds the lengths (in mm) of the three links of a leg. Every leg of
// the hexapod is the same.
type Geometry struct {
	Coxa  float64 `yaml:"coxa"`
	Femur float64 `yaml:"femur"`
	Tibia float64 `yaml:"tibia"`
}

var DefaultGeometry = Geometry{
	Coxa:  46.0,
	Femur: 108.0,
	Tibia: 200.0,
}

// Reach returns the distance from the coxa origin to the foot when the leg is
// fully extended. Nothing further away can be reached.
func (g Geometry) Reach() float64 {
	return g.Coxa + g.Femur + g.Tibia
}

func (g Geometry) String() string {
	return fmt.Sprintf("&Geom{coxa=%0.1f femur=%0.1f tibia=%0.1f}", g.Coxa, g.Femur, g.Tibia)
}

// Angles are the three joint angles of a leg, in degrees, indexed by Coxa,
// Femur, and Tibia.
type Angles [JointsPerLeg]float64

func (a Angles) String() string {
	return fmt.Sprintf("&Angles{c=%+.1f° f=%+.1f° t=%+.1f°}", a[Coxa], a[Femur], a[Tibia])
}
