package timeloc

import "github.com/huikaichung/knowyourself/pkg/formulas"

// GreenwichMeanSidereal returns Greenwich mean sidereal time in degrees for a
// Julian Day in UT (IAU 1982 expression, Meeus 12.4).
func GreenwichMeanSidereal(jd float64) float64 {
	t := Centuries(jd)
	theta := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*t*t -
		t*t*t/38710000
	return formulas.Normalize360(theta)
}

// LocalSidereal returns local sidereal time in degrees for a Greenwich sidereal
// time and an east-positive longitude. Adding longitude degrees is the same as
// adding longitude/15 sidereal hours.
func LocalSidereal(greenwich, longitude float64) float64 {
	return formulas.Normalize360(greenwich + longitude)
}

// LocalMeanSidereal returns the local mean sidereal time in degrees for the instant.
func (i Instant) LocalMeanSidereal(longitude float64) float64 {
	return LocalSidereal(GreenwichMeanSidereal(i.JD), longitude)
}

// SiderealHours converts sidereal degrees to hours.
func SiderealHours(deg float64) float64 {
	return formulas.Normalize360(deg) / 15
}
