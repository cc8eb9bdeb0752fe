// Package domain provides the value objects and the error taxonomy shared by the
// western and ziwei pipelines.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CivilDate is a proleptic Gregorian calendar date without a time zone.
type CivilDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// ParseDate parses a strict YYYY-MM-DD date. Calendar-impossible dates are rejected
// rather than normalized, so 1900-02-29 is an error and not March 1st.
func ParseDate(s string) (CivilDate, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return CivilDate{}, NewError(KindInvalidDate, "date", s, "expected YYYY-MM-DD")
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return CivilDate{}, NewError(KindInvalidDate, "date", s, "non-numeric date component")
		}
		nums[i] = n
	}

	d := CivilDate{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if err := d.Validate(); err != nil {
		var ce *CalcError
		if errors.As(err, &ce) {
			ce.Value = s
		}
		return CivilDate{}, err
	}
	return d, nil
}

// Validate checks the date exists in the Gregorian calendar.
func (d CivilDate) Validate() error {
	if d.Month < time.January || d.Month > time.December {
		return NewError(KindInvalidDate, "date", d.String(), "month out of range")
	}
	if d.Day < 1 || d.Day > DaysIn(d.Year, d.Month) {
		return NewError(KindInvalidDate, "date", d.String(),
			fmt.Sprintf("day out of range for %d-%02d", d.Year, int(d.Month)))
	}
	return nil
}

// String renders the date as YYYY-MM-DD.
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DayNumber returns the Julian Day Number of the date (the JD at noon).
// Integer form valid for the whole proleptic Gregorian calendar.
func (d CivilDate) DayNumber() int {
	a := (14 - int(d.Month)) / 12
	y := d.Year + 4800 - a
	m := int(d.Month) + 12*a - 3
	return d.Day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// CivilDateFromDayNumber is the inverse of DayNumber.
func CivilDateFromDayNumber(jdn int) CivilDate {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153

	return CivilDate{
		Year:  100*b + d - 4800 + m/10,
		Month: time.Month(m + 3 - 12*(m/10)),
		Day:   e - (153*m+2)/5 + 1,
	}
}

// Before reports whether d is strictly earlier than other.
func (d CivilDate) Before(other CivilDate) bool {
	return d.DayNumber() < other.DayNumber()
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// ParseClock parses HH:MM or HH:MM:SS.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ClockTime{}, NewError(KindInvalidTime, "time", s, "expected HH:MM or HH:MM:SS")
	}

	nums := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return ClockTime{}, NewError(KindInvalidTime, "time", s, "expected two-digit components")
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return ClockTime{}, NewError(KindInvalidTime, "time", s, "non-numeric time component")
		}
		nums[i] = n
	}

	c := ClockTime{Hour: nums[0], Minute: nums[1], Second: nums[2]}
	if err := c.Validate(); err != nil {
		var ce *CalcError
		if errors.As(err, &ce) {
			ce.Value = s
		}
		return ClockTime{}, err
	}
	return c, nil
}

// Validate checks the clock components are in range.
func (c ClockTime) Validate() error {
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return NewError(KindInvalidTime, "time", c.String(), "clock component out of range")
	}
	return nil
}

// String renders the time as HH:MM:SS.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// BirthMoment is a civil date and time in a named time zone.
type BirthMoment struct {
	Date     CivilDate `json:"date"`
	Clock    ClockTime `json:"time"`
	Timezone string    `json:"timezone"`
}

// ParseBirthMoment parses the date and time strings accepted by the chart entry points.
func ParseBirthMoment(date, clock, timezone string) (BirthMoment, error) {
	d, err := ParseDate(date)
	if err != nil {
		return BirthMoment{}, err
	}
	c, err := ParseClock(clock)
	if err != nil {
		return BirthMoment{}, err
	}
	return BirthMoment{Date: d, Clock: c, Timezone: strings.TrimSpace(timezone)}, nil
}

// GeoCoordinate is a geographic position in degrees, east longitude positive.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate ranges.
func (g GeoCoordinate) Validate() error {
	if g.Latitude != g.Latitude || g.Latitude < -90 || g.Latitude > 90 {
		return NewError(KindInvalidCoordinate, "latitude", strconv.FormatFloat(g.Latitude, 'f', -1, 64),
			"latitude must be within [-90, 90]")
	}
	if g.Longitude != g.Longitude || g.Longitude < -180 || g.Longitude > 180 {
		return NewError(KindInvalidCoordinate, "longitude", strconv.FormatFloat(g.Longitude, 'f', -1, 64),
			"longitude must be within [-180, 180]")
	}
	return nil
}
