package vecmath

// This package provides the float32 scalar and vector primitives used by the
// physics, control, and prediction packages.

import (
	"math"
)

// Epsilon is the relative tolerance used by the ApproxEqual helpers.
const Epsilon float32 = 1e-5

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Sin returns the sine of x (radians).
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos returns the cosine of x (radians).
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Atan returns the arctangent of x.
func Atan(x float32) float32 {
	return float32(math.Atan(float64(x)))
}

// Atan2 returns the angle of the vector (x, y) in radians.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Clamp limits x to the range [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float32) float32 {
	return deg * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float32) float32 {
	return rad * 180 / math.Pi
}

// ApproxEqual reports whether a and b are equal within a relative tolerance.
// Values closer than Epsilon in absolute terms always compare equal, so
// near-zero results from opposing operations do not fail the comparison.
func ApproxEqual(a, b float32) bool {
	diff := Abs(a - b)
	if diff <= Epsilon {
		return true
	}
	largest := Abs(a)
	if ab := Abs(b); ab > largest {
		largest = ab
	}
	return diff <= Epsilon*largest
}
