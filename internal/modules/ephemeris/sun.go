package ephemeris

import "github.com/huikaichung/knowyourself/pkg/formulas"

// aberrationConstant is the constant of annual aberration in degrees (20.49552").
const aberrationConstant = 20.49552 / 3600

// sunGeometric returns the Sun's geometric longitude (mean equinox of date) and its
// distance in AU, using the mean elements and equation of center of Meeus ch. 25.
func sunGeometric(t float64) (lon, dist float64) {
	l0 := formulas.Poly(t, 280.46646, 36000.76983, 0.0003032)
	m := formulas.Poly(t, 357.52911, 35999.05029, -0.0001537)
	e := formulas.Poly(t, 0.016708634, -0.000042037, -0.0000001267)

	c := formulas.Poly(t, 1.914602, -0.004817, -0.000014)*formulas.SinD(m) +
		(0.019993-0.000101*t)*formulas.SinD(2*m) +
		0.000289*formulas.SinD(3*m)

	v := m + c
	dist = 1.000001018 * (1 - e*e) / (1 + e*formulas.CosD(v))
	return formulas.Normalize360(l0 + c), dist
}

// sunApparent returns the Sun's apparent longitude (true equinox of date, corrected
// for aberration) and distance in AU.
func sunApparent(t float64) (lon, dist float64) {
	geo, dist := sunGeometric(t)
	dPsi, _ := Nutation(t)
	// 20.4898" is the aberration for the mean distance; it scales with 1/R
	return formulas.Normalize360(geo + dPsi - 20.4898/3600/dist), dist
}

// SunApparentLongitude returns the Sun's apparent ecliptic longitude in degrees for a
// Julian Ephemeris Day. It is exported for solar-term searches.
func SunApparentLongitude(jde float64) float64 {
	lon, _ := sunApparent(centuries(jde))
	return lon
}
