package math3d

import (
	"math"
)

// Point is the small set of operations which curve evaluation and
// interpolation need. Vector2 and Vector3 both satisfy it.
type Point[T any] interface {
	Add(T) T
	MultiplyByScalar(float64) T
}

// Bezier returns the point at t (0 to 1) on the Bezier curve defined by the
// given control points, using the Bernstein polynomial form. The gait tables
// are tuned against this exact shape, so don't swap it for another spline.
//
// Two to five control points are used in practice, but any number works. An
// empty slice returns the zero value.
func Bezier[T Point[T]](points []T, t float64) T {
	var pos T
	if len(points) == 0 {
		return pos
	}

	n := len(points) - 1
	pos = points[0].MultiplyByScalar(bernstein(n, 0, t))
	for i := 1; i <= n; i++ {
		pos = pos.Add(points[i].MultiplyByScalar(bernstein(n, i, t)))
	}

	return pos
}

// Lerp interpolates linearly between a (f=0) and b (f=1).
func Lerp[T Point[T]](a, b T, f float64) T {
	return a.MultiplyByScalar(1 - f).Add(b.MultiplyByScalar(f))
}

// LerpFloat is Lerp for plain scalars.
func LerpFloat(a, b, f float64) float64 {
	return (a * (1 - f)) + (b * f)
}

func bernstein(n, i int, t float64) float64 {
	return float64(binomial(n, i)) * math.Pow(1-t, float64(n-i)) * math.Pow(t, float64(i))
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}

	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}

	return r
}
