package timeloc

import (
	"time"

	"github.com/huikaichung/knowyourself/pkg/formulas"
)

const (
	// J2000 is the Julian Day of 2000-01-01 12:00 TT
	J2000 = 2451545.0
	// unixEpochJD is the Julian Day of 1970-01-01 00:00 UTC
	unixEpochJD = 2440587.5
)

// JulianDay converts an absolute time to a Julian Day (UT).
func JulianDay(t time.Time) float64 {
	return unixEpochJD + float64(t.UnixNano())/86400e9
}

// TimeFromJulianDay converts a Julian Day (UT) to a UTC time, rounded to the millisecond.
func TimeFromJulianDay(jd float64) time.Time {
	ms := (jd - unixEpochJD) * 86400e3
	return time.UnixMilli(int64(formulas.Round(ms, 0))).UTC()
}

// Centuries returns Julian centuries since J2000 for a Julian Day.
func Centuries(jd float64) float64 {
	return (jd - J2000) / 36525
}

// DecimalYear returns the year with its elapsed fraction, as used by the ΔT polynomials.
func DecimalYear(t time.Time) float64 {
	t = t.UTC()
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(t.Year()) + float64(t.Sub(start))/float64(end.Sub(start))
}

// DeltaT returns TT - UT in seconds for a decimal year, using the Espenak-Meeus
// polynomial segments. Outside 1900-2150 the long-term parabola is used.
func DeltaT(y float64) float64 {
	switch {
	case y >= 1900 && y < 1920:
		t := y - 1900
		return formulas.Poly(t, -2.79, 1.494119, -0.0598939, 0.0061966, -0.000197)
	case y >= 1920 && y < 1941:
		t := y - 1920
		return formulas.Poly(t, 21.20, 0.84493, -0.076100, 0.0020936)
	case y >= 1941 && y < 1961:
		t := y - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case y >= 1961 && y < 1986:
		t := y - 1975
		return 45.45 + 1.067*t - t*t/260 - t*t*t/718
	case y >= 1986 && y < 2005:
		t := y - 2000
		return formulas.Poly(t, 63.86, 0.3345, -0.060374, 0.0017275, 0.000651814, 0.00002373599)
	case y >= 2005 && y < 2050:
		t := y - 2000
		return formulas.Poly(t, 62.92, 0.32217, 0.005589)
	case y >= 2050 && y < 2150:
		u := (y - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-y)
	default:
		u := (y - 1820) / 100
		return -20 + 32*u*u
	}
}
