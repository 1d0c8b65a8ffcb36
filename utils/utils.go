package utils

import (
	"math"
)

func Deg(rads float64) float64 {
	return rads / (math.Pi / 180)
}

func Rad(degrees float64) float64 {
	return (math.Pi / 180) * degrees
}

// Constrain clamps v into [lo, hi].
func Constrain(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// MapRange linearly maps v from [inLo, inHi] onto [outLo, outHi], like the
// Arduino map() but for floats. The result isn't clamped.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	return (v-inLo)*(outHi-outLo)/(inHi-inLo) + outLo
}

// StepTowards moves v by at most step towards target, without overshooting.
func StepTowards(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}

	return math.Max(v-step, target)
}
