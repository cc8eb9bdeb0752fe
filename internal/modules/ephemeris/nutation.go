package ephemeris

import "github.com/huikaichung/knowyourself/pkg/formulas"

// Nutation returns nutation in longitude and in obliquity, in degrees, for Julian
// centuries of TT since J2000. Four-term series, accurate to about 0.5".
func Nutation(t float64) (dPsi, dEps float64) {
	omega := formulas.Poly(t, 125.04452, -1934.136261, 0.0020708, 1.0/450000)
	l := 280.4665 + 36000.7698*t
	lp := 218.3165 + 481267.8813*t

	dPsi = -17.20*formulas.SinD(omega) -
		1.32*formulas.SinD(2*l) -
		0.23*formulas.SinD(2*lp) +
		0.21*formulas.SinD(2*omega)
	dEps = 9.20*formulas.CosD(omega) +
		0.57*formulas.CosD(2*l) +
		0.10*formulas.CosD(2*lp) -
		0.09*formulas.CosD(2*omega)

	return dPsi / 3600, dEps / 3600
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees (IAU, Meeus 22.2).
func MeanObliquity(t float64) float64 {
	seconds := formulas.Poly(t, 84381.448, -46.8150, -0.00059, 0.001813)
	return seconds / 3600
}

// TrueObliquity returns the obliquity of the ecliptic including nutation, in degrees.
func TrueObliquity(t float64) float64 {
	_, dEps := Nutation(t)
	return MeanObliquity(t) + dEps
}
