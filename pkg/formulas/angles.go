// Package formulas holds the small numeric helpers shared by the ephemeris,
// house and chart packages. All angles are in degrees unless a name says otherwise.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Rad converts degrees to radians
func Rad(deg float64) float64 {
	return deg * degToRad
}

// Deg converts radians to degrees
func Deg(rad float64) float64 {
	return rad * radToDeg
}

// Normalize360 maps any angle onto [0, 360).
func Normalize360(deg float64) float64 {
	x := math.Mod(deg, 360)
	if x < 0 {
		x += 360
	}
	// math.Mod of a tiny negative value plus 360 can round up to exactly 360
	if x >= 360 {
		x = 0
	}
	return x
}

// Normalize180 maps any angle onto [-180, 180).
func Normalize180(deg float64) float64 {
	x := Normalize360(deg)
	if x >= 180 {
		x -= 360
	}
	return x
}

// Separation returns the smallest unsigned angle between two longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	return math.Abs(Normalize180(a - b))
}

// SinD is math.Sin for degrees
func SinD(deg float64) float64 { return math.Sin(deg * degToRad) }

// CosD is math.Cos for degrees
func CosD(deg float64) float64 { return math.Cos(deg * degToRad) }

// TanD is math.Tan for degrees
func TanD(deg float64) float64 { return math.Tan(deg * degToRad) }

// AsinD returns asin(x) in degrees
func AsinD(x float64) float64 { return math.Asin(x) * radToDeg }

// Atan2D returns atan2(y, x) in degrees, normalized to [0, 360).
func Atan2D(y, x float64) float64 {
	return Normalize360(math.Atan2(y, x) * radToDeg)
}

// Round rounds x to prec decimal places (half away from zero).
func Round(x float64, prec int) float64 {
	return scalar.Round(x, prec)
}

// Poly evaluates c[0] + c[1]*t + c[2]*t^2 + ... using Horner's scheme.
func Poly(t float64, c ...float64) float64 {
	if len(c) == 0 {
		return 0
	}
	sum := c[len(c)-1]
	for i := len(c) - 2; i >= 0; i-- {
		sum = sum*t + c[i]
	}
	return sum
}
