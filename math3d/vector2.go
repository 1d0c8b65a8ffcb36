package math3d

import (
	"fmt"
	"math"
)

// Vector2 is a point or direction on the ground plane. It's used for stick
// input and for pivots, where height doesn't matter.
type Vector2 struct {
	X float64
	Y float64
}

var (
	ZeroVector2 = Vector2{}
)

func (v Vector2) String() string {
	return fmt.Sprintf("&Vec2{x=%0.2f y=%0.2f}", v.X, v.Y)
}

func (v Vector2) Zero() bool {
	return (v.X == 0) && (v.Y == 0)
}

func (v Vector2) Add(vv Vector2) Vector2 {
	return Vector2{v.X + vv.X, v.Y + vv.Y}
}

func (v Vector2) Subtract(vv Vector2) Vector2 {
	return Vector2{v.X - vv.X, v.Y - vv.Y}
}

func (v Vector2) MultiplyByScalar(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

func (v Vector2) Magnitude() float64 {
	return math.Sqrt((v.X * v.X) + (v.Y * v.Y))
}

// Unit returns the vector scaled to a length of one, or the zero vector if it
// has no length.
func (v Vector2) Unit() Vector2 {
	m := v.Magnitude()
	if m == 0 {
		return ZeroVector2
	}

	return Vector2{v.X / m, v.Y / m}
}

func (v Vector2) Distance(vv Vector2) float64 {
	return v.Subtract(vv).Magnitude()
}

// RotateAround rotates the vector counter-clockwise by the given number of
// degrees around a pivot.
func (v Vector2) RotateAround(degrees float64, pivot Vector2) Vector2 {
	return Vector3{v.X, v.Y, 0}.RotateAround(degrees, pivot).XY()
}
