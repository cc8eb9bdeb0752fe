// Package western assembles tropical natal charts: zodiac placements for each body
// and angle, house cusps and major aspects.
package western

import (
	"github.com/huikaichung/knowyourself/pkg/formulas"
)

// Sign is one of the twelve tropical signs, 0 = Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signElements = [4]string{"fire", "earth", "air", "water"}

var signModalities = [3]string{"cardinal", "fixed", "mutable"}

func (s Sign) String() string { return signNames[((int(s)%12)+12)%12] }

// Element returns the triplicity of the sign.
func (s Sign) Element() string { return signElements[int(s)%4] }

// Modality returns the quadruplicity of the sign.
func (s Sign) Modality() string { return signModalities[int(s)%3] }

// SignOf returns floor(longitude / 30) for a normalized longitude.
func SignOf(lon float64) Sign {
	return Sign(int(formulas.Normalize360(lon) / 30))
}

// displayPrecision is the number of decimals kept in Placement.Degree.
const displayPrecision = 2

// Placement is a longitude expressed as sign and degree within the sign.
//
// Longitude keeps full precision. Sign, SignIndex and Degree are the display
// form, rounded to two decimals: 29.999 deg of Aries shows as 0.00 Taurus with
// SignIndex 1. SignOf(Longitude) gives the unrounded sign, floor(Longitude/30),
// which differs from SignIndex only in that rollover case.
type Placement struct {
	Sign      string  `json:"sign"`
	SignIndex int     `json:"sign_index"`
	Degree    float64 `json:"degree"`
	Element   string  `json:"element"`
	Modality  string  `json:"modality"`
	Longitude float64 `json:"longitude"`
}

// NewPlacement maps an ecliptic longitude to its zodiac placement.
func NewPlacement(lon float64) Placement {
	lon = formulas.Normalize360(lon)
	sign := SignOf(lon)
	deg := formulas.Round(lon-float64(sign)*30, displayPrecision)
	if deg >= 30 {
		deg = 0
		sign = (sign + 1) % 12
	}
	return Placement{
		Sign:      sign.String(),
		SignIndex: int(sign),
		Degree:    deg,
		Element:   sign.Element(),
		Modality:  sign.Modality(),
		Longitude: lon,
	}
}
