package kinematics

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/adammck/hexwalk/math3d"
	"github.com/adammck/hexwalk/utils"
)

// MaxOffset is the largest trim (in degrees, either way) which can be applied
// to a single joint during calibration.
const MaxOffset = 30.0

// BaseOffset is added to every leg's trims. It maps the solver's zero angles
// onto the servos' mechanical centers.
var BaseOffset = math3d.Vector3{X: 90, Y: 50, Z: -10}

// Offsets are the raw calibration trims, three per leg (coxa, femur, tibia).
type Offsets [NumOffsets]float64

// NormalizeOffsets copies raw into a full set of trims, padding with zeros or
// dropping the extras. The error is only informational; the result is always
// usable.
func NormalizeOffsets(raw []float64) (Offsets, error) {
	var o Offsets
	copy(o[:], raw)

	if len(raw) != NumOffsets {
		return o, &InvalidOffsetCountError{Len: len(raw)}
	}

	return o, nil
}

// Leg returns the trims for a single leg as a vector of (coxa, femur, tibia).
func (o Offsets) Leg(leg int) math3d.Vector3 {
	i := leg * JointsPerLeg
	return math3d.Vector3{X: o[i+Coxa], Y: o[i+Femur], Z: o[i+Tibia]}
}

func (o Offsets) Get(leg, joint int) (float64, error) {
	if err := checkLeg(leg); err != nil {
		return 0, err
	}

	if err := checkJoint(joint); err != nil {
		return 0, err
	}

	return o[(leg*JointsPerLeg)+joint], nil
}

// Adjust adds delta to a single trim, constrained to +/- MaxOffset, and returns
// the new value.
func (o *Offsets) Adjust(leg, joint int, delta float64) (float64, error) {
	if err := checkLeg(leg); err != nil {
		return 0, err
	}

	if err := checkJoint(joint); err != nil {
		return 0, err
	}

	i := (leg * JointsPerLeg) + joint
	o[i] = utils.Constrain(o[i]+delta, -MaxOffset, MaxOffset)
	return o[i], nil
}

// Print writes the trims to w as a table, one row per leg.
func (o Offsets) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "leg\tcoxa\tfemur\ttibia\t")

	for leg := 0; leg < NumLegs; leg++ {
		v := o.Leg(leg)
		fmt.Fprintf(tw, "%d\t%+.1f\t%+.1f\t%+.1f\t\n", leg, v.X, v.Y, v.Z)
	}

	return tw.Flush()
}
