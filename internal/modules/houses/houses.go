// Package houses computes the Ascendant, Midheaven and house cusps from local
// apparent sidereal time, geographic latitude and the obliquity of the ecliptic.
package houses

import (
	"fmt"
	"math"
	"strings"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/pkg/formulas"
)

// System selects how intermediate cusps are divided.
type System string

const (
	Placidus System = "placidus"
	Equal    System = "equal"
)

// ParseSystem accepts a case-insensitive house system name.
func ParseSystem(name string) (System, error) {
	switch System(strings.ToLower(strings.TrimSpace(name))) {
	case Placidus:
		return Placidus, nil
	case Equal:
		return Equal, nil
	default:
		return "", fmt.Errorf("unknown house system %q", name)
	}
}

// placidusIterations bounds the semi-arc fixed-point loop; it converges in a
// handful of steps outside the polar circles.
const placidusIterations = 50

// Input is everything the calculator needs for one chart.
type Input struct {
	// RAMC is the right ascension of the meridian (local apparent sidereal time) in degrees.
	RAMC      float64
	Latitude  float64
	Obliquity float64
}

// Result holds the angles and twelve cusps. Cusps[0] is the first house cusp.
type Result struct {
	System    System      `json:"system"`
	Ascendant float64     `json:"ascendant"`
	Midheaven float64     `json:"midheaven"`
	Cusps     [12]float64 `json:"cusps"`
}

// Degenerate reports whether the Ascendant is undefined at this latitude: inside a
// polar circle some ecliptic degrees never rise, so the eastern horizon point jumps.
func Degenerate(latitude, obliquity float64) bool {
	return math.Abs(latitude) >= 90-obliquity
}

// Ascendant returns the ecliptic longitude rising on the eastern horizon.
func Ascendant(ramc, latitude, obliquity float64) float64 {
	y := formulas.CosD(ramc)
	x := -(formulas.SinD(ramc)*formulas.CosD(obliquity) + formulas.TanD(latitude)*formulas.SinD(obliquity))
	return formulas.Atan2D(y, x)
}

// Midheaven returns the ecliptic longitude culminating on the meridian.
func Midheaven(ramc, obliquity float64) float64 {
	return formulas.Atan2D(formulas.SinD(ramc), formulas.CosD(ramc)*formulas.CosD(obliquity))
}

// Calculate returns the Ascendant, Midheaven and cusps for the given system.
func Calculate(in Input, system System) (Result, error) {
	if math.IsNaN(in.Latitude) || in.Latitude < -90 || in.Latitude > 90 {
		return Result{}, domain.NewError(domain.KindInvalidCoordinate, "latitude", fmt.Sprint(in.Latitude), "latitude must be within [-90, 90]")
	}
	if Degenerate(in.Latitude, in.Obliquity) {
		return Result{}, domain.NewError(domain.KindDegenerateAscendant, "latitude", fmt.Sprint(in.Latitude),
			fmt.Sprintf("ascendant is undefined beyond the polar circle (|latitude| >= %.2f)", 90-in.Obliquity))
	}

	res := Result{
		System:    system,
		Ascendant: Ascendant(in.RAMC, in.Latitude, in.Obliquity),
		Midheaven: Midheaven(in.RAMC, in.Obliquity),
	}

	switch system {
	case Equal:
		for i := range res.Cusps {
			res.Cusps[i] = formulas.Normalize360(res.Ascendant + float64(i)*30)
		}
	case Placidus, "":
		res.System = Placidus
		cusps, err := placidusCusps(in, res.Ascendant, res.Midheaven)
		if err != nil {
			return Result{}, err
		}
		res.Cusps = cusps
	default:
		return Result{}, fmt.Errorf("unknown house system %q", system)
	}
	return res, nil
}

func placidusCusps(in Input, asc, mc float64) ([12]float64, error) {
	var c [12]float64
	c[0] = asc
	c[9] = mc

	// fraction of the diurnal semi-arc measured from the MC, above the horizon
	above := []struct {
		idx  int
		frac float64
	}{{10, 1.0 / 3}, {11, 2.0 / 3}}
	for _, a := range above {
		lon, err := placidusCusp(in, a.frac, false)
		if err != nil {
			return c, err
		}
		c[a.idx] = lon
	}

	// fraction of the nocturnal semi-arc measured back from the IC
	below := []struct {
		idx  int
		frac float64
	}{{1, 2.0 / 3}, {2, 1.0 / 3}}
	for _, b := range below {
		lon, err := placidusCusp(in, b.frac, true)
		if err != nil {
			return c, err
		}
		c[b.idx] = lon
	}

	for i := 3; i < 9; i++ {
		c[i] = formulas.Normalize360(c[(i+6)%12] + 180)
	}
	return c, nil
}

// placidusCusp solves for the ecliptic point whose right ascension sits the given
// fraction of its own semi-arc away from the meridian.
func placidusCusp(in Input, frac float64, nocturnal bool) (float64, error) {
	ramc, eps, lat := in.RAMC, in.Obliquity, in.Latitude

	ra := ramc + frac*90
	if nocturnal {
		ra = ramc + 180 - frac*90
	}

	var lon float64
	for i := 0; i < placidusIterations; i++ {
		lon = formulas.Atan2D(formulas.SinD(ra), formulas.CosD(ra)*formulas.CosD(eps))
		decl := formulas.AsinD(formulas.SinD(eps) * formulas.SinD(lon))
		arg := formulas.TanD(lat) * formulas.TanD(decl)
		if math.Abs(arg) > 1 {
			return 0, domain.NewError(domain.KindDegenerateAscendant, "latitude", fmt.Sprint(lat), "placidus semi-arc is undefined at this latitude")
		}
		ascDiff := formulas.AsinD(arg)

		var next float64
		if nocturnal {
			next = ramc + 180 - frac*(90-ascDiff)
		} else {
			next = ramc + frac*(90+ascDiff)
		}
		if math.Abs(formulas.Normalize180(next-ra)) < 1e-9 {
			ra = next
			break
		}
		ra = next
	}
	return formulas.Atan2D(formulas.SinD(ra), formulas.CosD(ra)*formulas.CosD(eps)), nil
}

// HouseOf returns the 1-based house containing an ecliptic longitude.
func (r Result) HouseOf(lon float64) int {
	lon = formulas.Normalize360(lon)
	for i := 0; i < 12; i++ {
		start := r.Cusps[i]
		span := formulas.Normalize360(r.Cusps[(i+1)%12] - start)
		if formulas.Normalize360(lon-start) < span {
			return i + 1
		}
	}
	return 12
}
