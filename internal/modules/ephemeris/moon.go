package ephemeris

import "github.com/huikaichung/knowyourself/pkg/formulas"

// lunarTerm is one periodic term of the ELP-2000/82 truncation in Meeus ch. 47.
// Argument multiples of D, M, M', F; longitude coefficient in 1e-6 degrees,
// distance coefficient in 1e-3 km.
type lunarTerm struct {
	d, m, mp, f int
	sl, sr      float64
}

// Table 47.A
var lunarLonDist = [...]lunarTerm{
	{0, 0, 1, 0, 6288774, -20905355},
	{2, 0, -1, 0, 1274027, -3699111},
	{2, 0, 0, 0, 658314, -2955968},
	{0, 0, 2, 0, 213618, -569925},
	{0, 1, 0, 0, -185116, 48888},
	{0, 0, 0, 2, -114332, -3149},
	{2, 0, -2, 0, 58793, 246158},
	{2, -1, -1, 0, 57066, -152138},
	{2, 0, 1, 0, 53322, -170733},
	{2, -1, 0, 0, 45758, -204586},
	{0, 1, -1, 0, -40923, -129620},
	{1, 0, 0, 0, -34720, 108743},
	{0, 1, 1, 0, -30383, 104755},
	{2, 0, 0, -2, 15327, 10321},
	{0, 0, 1, 2, -12528, 0},
	{0, 0, 1, -2, 10980, 79661},
	{4, 0, -1, 0, 10675, -34782},
	{0, 0, 3, 0, 10034, -23210},
	{4, 0, -2, 0, 8548, -21636},
	{2, 1, -1, 0, -7888, 24208},
	{2, 1, 0, 0, -6766, 30824},
	{1, 0, -1, 0, -5163, -8379},
	{1, 1, 0, 0, 4987, -16675},
	{2, -1, 1, 0, 4036, -12831},
	{2, 0, 2, 0, 3994, -10445},
	{4, 0, 0, 0, 3861, -11650},
	{2, 0, -3, 0, 3665, 14403},
	{0, 1, -2, 0, -2689, -7003},
	{2, 0, -1, 2, -2602, 0},
	{2, -1, -2, 0, 2390, 10056},
	{1, 0, 1, 0, -2348, 6322},
	{2, -2, 0, 0, 2236, -9884},
	{0, 1, 2, 0, -2120, 5751},
	{0, 2, 0, 0, -2069, 0},
	{2, -2, -1, 0, 2048, -4950},
	{2, 0, 1, -2, -1773, 4130},
	{2, 0, 0, 2, -1595, 0},
	{4, -1, -1, 0, 1215, -3958},
	{0, 0, 2, 2, -1110, 0},
	{3, 0, -1, 0, -892, 3258},
	{2, 1, 1, 0, -810, 2616},
	{4, -1, -2, 0, 759, -1897},
	{0, 2, -1, 0, -713, -2117},
	{2, 2, -1, 0, -700, 2354},
	{2, 1, -2, 0, 691, 0},
	{2, -1, 0, -2, 596, 0},
	{4, 0, 1, 0, 549, -1423},
	{0, 0, 4, 0, 537, -1117},
	{4, -1, 0, 0, 520, -1571},
	{1, 0, -2, 0, -487, -1739},
	{2, 1, 0, -2, -399, 0},
	{0, 0, 2, -2, -381, -4421},
	{1, 1, 1, 0, 351, 0},
	{3, 0, -2, 0, -340, 0},
	{4, 0, -3, 0, 330, 0},
	{2, -1, 2, 0, 327, 0},
	{0, 2, 1, 0, -323, 1165},
	{1, 1, -1, 0, 299, 0},
	{2, 0, 3, 0, 294, 0},
	{2, 0, -1, -2, 0, 8752},
}

// Table 47.B (leading terms), latitude coefficients in 1e-6 degrees.
var lunarLat = [...]lunarTerm{
	{0, 0, 0, 1, 5128122, 0},
	{0, 0, 1, 1, 280602, 0},
	{0, 0, 1, -1, 277693, 0},
	{2, 0, 0, -1, 173237, 0},
	{2, 0, -1, 1, 55413, 0},
	{2, 0, -1, -1, 46271, 0},
	{2, 0, 0, 1, 32573, 0},
	{0, 0, 2, 1, 17198, 0},
	{2, 0, 1, -1, 9266, 0},
	{0, 0, 2, -1, 8822, 0},
	{2, -1, 0, -1, 8216, 0},
	{2, 0, -2, -1, 4324, 0},
	{2, 0, 1, 1, 4200, 0},
	{2, 1, 0, -1, -3359, 0},
	{2, -1, -1, 1, 2463, 0},
	{2, -1, 0, 1, 2211, 0},
	{2, -1, -1, -1, 2065, 0},
	{0, 1, -1, -1, -1870, 0},
	{4, 0, -1, -1, 1828, 0},
	{0, 1, 0, 1, -1794, 0},
	{0, 0, 0, 3, -1749, 0},
	{0, 1, -1, 1, -1565, 0},
	{1, 0, 0, 1, -1491, 0},
	{0, 1, 1, 1, -1475, 0},
	{0, 1, 1, -1, -1410, 0},
	{0, 1, 0, -1, -1344, 0},
	{1, 0, 0, -1, -1335, 0},
	{0, 0, 3, 1, 1107, 0},
	{4, 0, 0, -1, 1021, 0},
	{4, 0, -1, 1, 833, 0},
}

const auKm = 149597870.7

// moonGeometric returns the Moon's geocentric ecliptic longitude and latitude
// (mean equinox of date) in degrees and its distance in km.
func moonGeometric(t float64) (lon, lat, distKm float64) {
	lp := formulas.Poly(t, 218.3164477, 481267.88123421, -0.0015786, 1.0/538841, -1.0/65194000)
	d := formulas.Poly(t, 297.8501921, 445267.1114034, -0.0018819, 1.0/545868, -1.0/113065000)
	m := formulas.Poly(t, 357.5291092, 35999.0502909, -0.0001536, 1.0/24490000)
	mp := formulas.Poly(t, 134.9633964, 477198.8675055, 0.0087414, 1.0/69699, -1.0/14712000)
	f := formulas.Poly(t, 93.2720950, 483202.0175233, -0.0036539, -1.0/3526000, 1.0/863310000)

	a1 := 119.75 + 131.849*t
	a2 := 53.09 + 479264.290*t
	a3 := 313.45 + 481266.484*t
	e := formulas.Poly(t, 1, -0.002516, -0.0000074)

	// Terms involving the Sun's mean anomaly shrink with the decreasing eccentricity of Earth's orbit.
	eFactor := func(mult int) float64 {
		switch mult {
		case 1, -1:
			return e
		case 2, -2:
			return e * e
		default:
			return 1
		}
	}

	var sumL, sumR, sumB float64
	for _, term := range lunarLonDist {
		arg := float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f
		k := eFactor(term.m)
		sumL += term.sl * k * formulas.SinD(arg)
		sumR += term.sr * k * formulas.CosD(arg)
	}
	for _, term := range lunarLat {
		arg := float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f
		sumB += term.sl * eFactor(term.m) * formulas.SinD(arg)
	}

	// Venus, Jupiter and flattening of the Earth
	sumL += 3958*formulas.SinD(a1) + 1962*formulas.SinD(lp-f) + 318*formulas.SinD(a2)
	sumB += -2235*formulas.SinD(lp) +
		382*formulas.SinD(a3) +
		175*formulas.SinD(a1-f) +
		175*formulas.SinD(a1+f) +
		127*formulas.SinD(lp-mp) -
		115*formulas.SinD(lp+mp)

	lon = formulas.Normalize360(lp + sumL/1e6)
	lat = sumB / 1e6
	distKm = 385000.56 + sumR/1e3
	return lon, lat, distKm
}

// moonApparent returns apparent longitude, latitude and distance in AU.
func moonApparent(t float64) (lon, lat, dist float64) {
	geo, lat, km := moonGeometric(t)
	dPsi, _ := Nutation(t)
	return formulas.Normalize360(geo + dPsi), lat, km / auKm
}

// meanNode returns the longitude of the mean ascending node of the lunar orbit.
func meanNode(t float64) float64 {
	return formulas.Normalize360(formulas.Poly(t, 125.0445479, -1934.1362891, 0.0020754, 1.0/467441, -1.0/60616000))
}
