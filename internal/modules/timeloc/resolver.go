// Package timeloc resolves civil birth moments into precise instants and derives
// sidereal time for a geographic longitude.
package timeloc

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone rules independent of the host

	"github.com/huikaichung/knowyourself/internal/domain"
)

// Instant is a resolved moment in universal time together with the local wall
// clock it was derived from.
type Instant struct {
	UTC           time.Time `json:"utc"`
	Local         time.Time `json:"local"`
	Zone          string    `json:"zone"`
	OffsetSeconds int       `json:"offset_seconds"`
	DST           bool      `json:"dst"`
	JD            float64   `json:"jd"`      // Julian Day in UT
	DeltaT        float64   `json:"delta_t"` // TT - UT in seconds
}

// JDE returns the Julian Ephemeris Day (TT) used by the ephemerides.
func (i Instant) JDE() float64 {
	return i.JD + i.DeltaT/86400
}

// FromTime builds an Instant from an absolute time.
func FromTime(t time.Time) Instant {
	name, offset := t.Zone()
	utc := t.UTC()
	return Instant{
		UTC:           utc,
		Local:         t,
		Zone:          name,
		OffsetSeconds: offset,
		DST:           t.IsDST(),
		JD:            JulianDay(utc),
		DeltaT:        DeltaT(DecimalYear(utc)),
	}
}

// LoadZone loads an IANA zone. The empty name and "Local" are rejected because
// they depend on the host.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, domain.NewError(domain.KindInvalidTimezone, "timezone", name,
			"an explicit IANA zone identifier is required")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, domain.NewError(domain.KindInvalidTimezone, "timezone", name,
			"unrecognized zone identifier").Wrap(err)
	}
	return loc, nil
}

// Resolve converts a civil birth moment into an Instant using the zone's historical
// offset rules for that date.
//
// A wall time repeated by a DST fold resolves to the standard-time offset. A wall
// time skipped by a DST gap, or a fold between two offsets with the same DST flag,
// fails with AmbiguousLocalTime.
func Resolve(m domain.BirthMoment) (Instant, error) {
	if err := m.Date.Validate(); err != nil {
		return Instant{}, err
	}
	if err := m.Clock.Validate(); err != nil {
		return Instant{}, err
	}

	loc, err := LoadZone(m.Timezone)
	if err != nil {
		return Instant{}, err
	}

	local, err := resolveWallClock(m, loc)
	if err != nil {
		return Instant{}, err
	}

	return FromTime(local), nil
}

func resolveWallClock(m domain.BirthMoment, loc *time.Location) (time.Time, error) {
	naive := time.Date(m.Date.Year, m.Date.Month, m.Date.Day,
		m.Clock.Hour, m.Clock.Minute, m.Clock.Second, 0, time.UTC)

	// Every offset the zone uses within a day of the wall time is a candidate.
	offsets := make([]int, 0, 3)
	for _, shift := range []time.Duration{-26 * time.Hour, 0, 26 * time.Hour} {
		_, off := naive.Add(shift).In(loc).Zone()
		if !containsInt(offsets, off) {
			offsets = append(offsets, off)
		}
	}

	var matches []time.Time
	for _, off := range offsets {
		candidate := naive.Add(-time.Duration(off) * time.Second).In(loc)
		if sameWallClock(candidate, naive) {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return time.Time{}, domain.NewError(domain.KindAmbiguousLocalTime, "time",
			m.Clock.String(), fmt.Sprintf("local time does not exist in %s on %s", loc, m.Date))
	}

	var standard []time.Time
	for _, t := range matches {
		if !t.IsDST() {
			standard = append(standard, t)
		}
	}
	if len(standard) == 1 {
		return standard[0], nil
	}

	return time.Time{}, domain.NewError(domain.KindAmbiguousLocalTime, "time",
		m.Clock.String(), fmt.Sprintf("local time maps to %d instants in %s on %s", len(matches), loc, m.Date))
}

func sameWallClock(t, naive time.Time) bool {
	return t.Year() == naive.Year() && t.Month() == naive.Month() && t.Day() == naive.Day() &&
		t.Hour() == naive.Hour() && t.Minute() == naive.Minute() && t.Second() == naive.Second()
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
