package timeloc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		jd   float64
	}{
		{"J2000", time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"unix epoch", time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"sputnik launch", time.Date(1957, time.October, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"1900 january 0.5", time.Date(1899, time.December, 31, 12, 0, 0, 0, time.UTC), 2415020.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.jd, JulianDay(tt.t), 1e-6)
		})
	}
}

func TestTimeFromJulianDay(t *testing.T) {
	want := time.Date(1990, time.January, 15, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, want, TimeFromJulianDay(JulianDay(want)))
}

func TestCenturies(t *testing.T) {
	assert.Equal(t, 0.0, Centuries(J2000))
	assert.InDelta(t, 1.0, Centuries(J2000+36525), 1e-12)
}

func TestDeltaT(t *testing.T) {
	tests := []struct {
		year     float64
		expected float64
		tol      float64
	}{
		{1900, -2.8, 0.5},
		{1950, 29.1, 0.5},
		{1975, 45.5, 0.5},
		{1990, 56.9, 0.5},
		{2000, 63.9, 0.5},
		{2010, 66.9, 1.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, DeltaT(tt.year), tt.tol, "year %v", tt.year)
	}
}

func TestDecimalYear(t *testing.T) {
	assert.InDelta(t, 2000.0, DecimalYear(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-12)
	assert.InDelta(t, 2001.5, DecimalYear(time.Date(2001, 7, 2, 12, 0, 0, 0, time.UTC)), 1e-3)
}
