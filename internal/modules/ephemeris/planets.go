package ephemeris

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/huikaichung/knowyourself/pkg/formulas"
)

// lightTimeDaysPerAU is the light travel time for one astronomical unit, in days.
const lightTimeDaysPerAU = 0.0057755183

// orbitalElements holds Keplerian elements referred to the J2000 ecliptic and
// equinox: a value at J2000 and a rate per Julian century for each element.
// Source: E. M. Standish, "Keplerian Elements for Approximate Positions of the
// Major Planets", Table 1 (valid 1800 AD - 2050 AD).
type orbitalElements struct {
	a, aDot       float64 // semi-major axis, AU
	e, eDot       float64 // eccentricity
	i, iDot       float64 // inclination
	l, lDot       float64 // mean longitude
	peri, periDot float64 // longitude of perihelion
	node, nodeDot float64 // longitude of ascending node
}

var elementTable = map[Body]orbitalElements{
	Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	Uranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	Neptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	Pluto: {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

// earthMoonBarycenter stands in for the Earth when forming geocentric vectors.
// The Earth's offset from the barycenter is under 0.00003 AU.
var earthMoonBarycenter = orbitalElements{1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0, 0}

var (
	axisX = r3.Vec{X: 1}
	axisZ = r3.Vec{Z: 1}
)

// heliocentric returns the rectangular heliocentric position in AU on the J2000
// ecliptic for centuries t since J2000 (TT).
func (el orbitalElements) heliocentric(t float64) r3.Vec {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	inc := el.i + el.iDot*t
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	argPeri := peri - node
	meanAnomaly := formulas.Rad(formulas.Normalize180(l - peri))
	ecc := solveKepler(meanAnomaly, e)

	inPlane := r3.Vec{
		X: a * (math.Cos(ecc) - e),
		Y: a * math.Sqrt(1-e*e) * math.Sin(ecc),
	}
	// perihelion argument in the orbit plane, tilt by inclination, then swing to the node
	p := r3.Rotate(inPlane, formulas.Rad(argPeri), axisZ)
	p = r3.Rotate(p, formulas.Rad(inc), axisX)
	return r3.Rotate(p, formulas.Rad(node), axisZ)
}

// solveKepler returns the eccentric anomaly in radians for mean anomaly m (radians).
func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for i := 0; i < 30; i++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}

// eclipticOf returns longitude and latitude in degrees of a rectangular vector.
func eclipticOf(v r3.Vec) (lon, lat float64) {
	lon = formulas.Atan2D(v.Y, v.X)
	lat = formulas.Deg(math.Atan2(v.Z, math.Hypot(v.X, v.Y)))
	return lon, lat
}

// planetApparent returns the apparent geocentric longitude, latitude and distance
// (AU) of a planet for centuries t since J2000 (TT).
func planetApparent(body Body, t float64) (lon, lat, dist float64) {
	el := elementTable[body]
	earth := earthMoonBarycenter.heliocentric(t)

	geo := r3.Sub(el.heliocentric(t), earth)
	dist = r3.Norm(geo)
	// one light-time iteration: the planet as it was when the light left it
	tau := lightTimeDaysPerAU * dist / 36525
	geo = r3.Sub(el.heliocentric(t-tau), earth)
	dist = r3.Norm(geo)

	lon, lat = eclipticOf(geo)

	// J2000 ecliptic to the mean equinox of date (general precession in longitude)
	lon += 1.396971*t + 0.0003086*t*t

	dPsi, _ := Nutation(t)
	sunLon, _ := sunGeometric(t)
	lon += dPsi - aberrationConstant*formulas.CosD(sunLon-lon)/formulas.CosD(lat)
	lat -= aberrationConstant * formulas.SinD(sunLon-lon) * formulas.SinD(lat)

	return formulas.Normalize360(lon), lat, dist
}
