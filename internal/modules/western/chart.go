package western

import (
	"slices"
	"time"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ephemeris"
	"github.com/huikaichung/knowyourself/internal/modules/houses"
)

// BodyPlacement is a body's zodiac placement together with its motion and house.
type BodyPlacement struct {
	Placement
	Body       string  `json:"body"`
	Latitude   float64 `json:"latitude"`
	Speed      float64 `json:"speed"`
	Retrograde bool    `json:"retrograde"`
	House      int     `json:"house"`
}

// Chart is a tropical natal chart.
type Chart struct {
	ID            string               `json:"id"`
	Birth         domain.BirthMoment   `json:"birth"`
	Location      domain.GeoCoordinate `json:"location"`
	UTC           time.Time            `json:"utc"`
	JulianDay     float64              `json:"julian_day"`
	SiderealTime  float64              `json:"local_sidereal_time"` // hours
	Obliquity     float64              `json:"obliquity"`
	HouseSystem   houses.System        `json:"house_system"`
	PrecisionTier string               `json:"precision_tier"`

	Sun       BodyPlacement   `json:"sun"`
	Moon      BodyPlacement   `json:"moon"`
	Ascendant Placement       `json:"ascendant"`
	Midheaven Placement       `json:"midheaven"`
	Planets   []BodyPlacement `json:"planets"`
	Houses    []Placement     `json:"houses"`
	Aspects   []Aspect        `json:"aspects"`
	Patterns  []Pattern       `json:"patterns"`
}

// Clone returns a copy that shares no slices with c.
func (c *Chart) Clone() *Chart {
	out := *c
	out.Planets = slices.Clone(c.Planets)
	out.Houses = slices.Clone(c.Houses)
	out.Aspects = slices.Clone(c.Aspects)
	out.Patterns = slices.Clone(c.Patterns)
	for i := range out.Patterns {
		out.Patterns[i].Bodies = slices.Clone(c.Patterns[i].Bodies)
	}
	return &out
}

// Body looks a body up by its key ("sun", "mars", "mean_node").
func (c *Chart) Body(name string) (BodyPlacement, bool) {
	for _, p := range c.Planets {
		if p.Body == name {
			return p, true
		}
	}
	return BodyPlacement{}, false
}

// assemble maps ephemeris and house results onto zodiac placements.
func assemble(positions []ephemeris.Position, h houses.Result) (planets []BodyPlacement, cusps []Placement) {
	planets = make([]BodyPlacement, 0, len(positions))
	for _, pos := range positions {
		planets = append(planets, BodyPlacement{
			Placement:  NewPlacement(pos.Longitude),
			Body:       pos.Body.String(),
			Latitude:   pos.Latitude,
			Speed:      pos.Speed,
			Retrograde: pos.Retrograde(),
			House:      h.HouseOf(pos.Longitude),
		})
	}

	cusps = make([]Placement, len(h.Cusps))
	for i, c := range h.Cusps {
		cusps[i] = NewPlacement(c)
	}
	return planets, cusps
}
