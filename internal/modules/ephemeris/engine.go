// Package ephemeris computes apparent geocentric ecliptic positions of the Sun,
// Moon, planets and the lunar mean node from closed-form analytical theories.
//
// Precision tier: the Sun follows Meeus ch. 25 with nutation and aberration
// (about 0.01 deg), the Moon the ELP-2000/82 truncation of Meeus ch. 47 (about
// 0.003 deg in longitude), and the planets Standish's Keplerian elements fitted
// over 1800-2050 with light time, precession, nutation and aberration applied
// (0.05 to 0.2 deg; Saturn and Pluto degrade fastest outside the fit window).
// All functions are pure and safe for concurrent use.
package ephemeris

import (
	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/pkg/formulas"
)

// PrecisionTier names the analytical model set implemented by this package.
const PrecisionTier = "meeus-sun+elp82-moon+standish-planets"

// speedStep is half the interval used for numerical daily motion, in days.
const speedStep = 0.5

// Position is an apparent geocentric ecliptic position on the true equinox of date.
type Position struct {
	Body      Body    `json:"body"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Distance  float64 `json:"distance_au,omitempty"`
	Speed     float64 `json:"speed"`
}

// Retrograde reports apparent backwards motion along the ecliptic.
func (p Position) Retrograde() bool {
	return p.Speed < 0
}

func centuries(jde float64) float64 {
	return (jde - 2451545.0) / 36525
}

// Obliquity returns the true obliquity of the ecliptic for a Julian Ephemeris Day.
func Obliquity(jde float64) float64 {
	return TrueObliquity(centuries(jde))
}

// Compute returns the position of one body at a Julian Ephemeris Day, with daily
// motion from a central difference.
func Compute(body Body, jde float64) (Position, error) {
	if !body.Valid() {
		return Position{}, domain.NewError(domain.KindEphemerisUnavailable, "body", body.String(), "body is not modeled")
	}

	lon, lat, dist := apparent(body, centuries(jde))
	before, _, _ := apparent(body, centuries(jde-speedStep))
	after, _, _ := apparent(body, centuries(jde+speedStep))

	return Position{
		Body:      body,
		Longitude: lon,
		Latitude:  lat,
		Distance:  dist,
		Speed:     formulas.Normalize180(after-before) / (2 * speedStep),
	}, nil
}

// ComputeAll returns positions for the given bodies, or for AllBodies when none
// are named. The result is in request order.
func ComputeAll(jde float64, bodies ...Body) ([]Position, error) {
	if len(bodies) == 0 {
		bodies = AllBodies
	}
	out := make([]Position, 0, len(bodies))
	for _, b := range bodies {
		pos, err := Compute(b, jde)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}

func apparent(body Body, t float64) (lon, lat, dist float64) {
	switch body {
	case Sun:
		lon, dist = sunApparent(t)
		return lon, 0, dist
	case Moon:
		return moonApparent(t)
	case MeanNode:
		dPsi, _ := Nutation(t)
		return formulas.Normalize360(meanNode(t) + dPsi), 0, 0
	default:
		return planetApparent(body, t)
	}
}
