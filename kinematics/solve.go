package kinematics

import (
	"math"

	"github.com/adammck/hexwalk/math3d"
	"github.com/adammck/hexwalk/utils"
)

// Targets closer than this to the femur joint are treated as on it.
const singularEpsilon = 1e-9

// Solve returns the joint angles which put the foot of the given leg at the
// target, which is relative to the coxa origin: X points outwards from the
// body, Y sideways, and Z up. The offset (coxa, femur, tibia) is added to the
// solved angles.
//
// The returned angles are in the solver's natural range, and aren't clamped to
// servo travel. Targets further away than the fully extended leg return an
// UnreachableError. A target exactly on the femur joint has no defined femur
// angle, and returns a SingularError.
func Solve(g Geometry, leg int, target math3d.Vector3, offset math3d.Vector3) (Angles, error) {
	var a Angles

	dist := target.Magnitude()
	if dist > g.Reach() {
		return a, &UnreachableError{Leg: leg, Target: target, Distance: dist, MaxReach: g.Reach()}
	}

	x, y, z := target.X, target.Y, target.Z
	a1, a2, a3 := g.Coxa, g.Femur, g.Tibia

	// Rotation of the whole leg around the vertical axis.
	a[Coxa] = utils.Deg(math.Atan2(y, x)) + offset.X

	// The femur and tibia work on the vertical plane through the foot. l1 is the
	// horizontal distance beyond the end of the coxa, and h is the straight line
	// from the femur joint to the foot.
	l := math.Sqrt((x * x) + (y * y))
	l1 := l - a1
	h := math.Sqrt((l1 * l1) + (z * z))
	if h < singularEpsilon {
		return Angles{}, &SingularError{Leg: leg, Target: target}
	}

	phi1 := math.Acos(utils.Constrain(((h*h)+(a2*a2)-(a3*a3))/(2*h*a2), -1, 1))
	phi2 := math.Atan2(z, l1)
	a[Femur] = utils.Deg(phi1+phi2) + offset.Y

	phi3 := math.Acos(utils.Constrain(((a2*a2)+(a3*a3)-(h*h))/(2*a2*a3), -1, 1))
	a[Tibia] = 180 - utils.Deg(phi3) + offset.Z

	// Only happens with a non-finite target.
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Angles{}, &UnreachableError{Leg: leg, Target: target, Distance: dist, MaxReach: g.Reach()}
		}
	}

	return a, nil
}

// Forward returns the position of the foot given the joint angles, without any
// offsets. It's the inverse of Solve.
func Forward(g Geometry, a Angles) math3d.Vector3 {
	return chain(g, a).End()
}

// chain builds the segments of a leg posed at the given angles, and returns the
// last one. The coxa turns around the vertical axis; the femur and tibia pitch
// on the plane which it points along.
func chain(g Geometry, a Angles) *Segment {
	coxa := MakeRootSegment("coxa", *math3d.MakeSingularEulerAngle(math3d.RotationBank, a[Coxa]), math3d.Vector3{X: g.Coxa})
	femur := MakeSegment("femur", coxa, *math3d.MakeSingularEulerAngle(math3d.RotationHeading, -a[Femur]), math3d.Vector3{X: g.Femur})
	return MakeSegment("tibia", femur, *math3d.MakeSingularEulerAngle(math3d.RotationHeading, a[Tibia]), math3d.Vector3{X: g.Tibia})
}
