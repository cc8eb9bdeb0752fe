package timeloc

import (
	"testing"
	"time"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moment(t *testing.T, date, clock, tz string) domain.BirthMoment {
	t.Helper()
	m, err := domain.ParseBirthMoment(date, clock, tz)
	require.NoError(t, err)
	return m
}

func TestResolve_Taipei(t *testing.T) {
	inst, err := Resolve(moment(t, "1990-01-15", "08:30", "Asia/Taipei"))
	require.NoError(t, err)

	assert.Equal(t, time.Date(1990, time.January, 15, 0, 30, 0, 0, time.UTC), inst.UTC)
	assert.Equal(t, 8*3600, inst.OffsetSeconds)
	assert.False(t, inst.DST)
	assert.Equal(t, 15, inst.Local.Day())
	assert.Equal(t, 8, inst.Local.Hour())
}

func TestResolve_MidnightCrossesUTCDate(t *testing.T) {
	inst, err := Resolve(moment(t, "1995-12-25", "00:15", "Asia/Taipei"))
	require.NoError(t, err)

	// The UTC instant falls on the previous civil day while the local date is kept.
	assert.Equal(t, time.Date(1995, time.December, 24, 16, 15, 0, 0, time.UTC), inst.UTC)
	assert.Equal(t, 25, inst.Local.Day())
}

func TestResolve_DateSensitiveOffsets(t *testing.T) {
	winter, err := Resolve(moment(t, "2021-01-15", "12:00", "Europe/London"))
	require.NoError(t, err)
	summer, err := Resolve(moment(t, "2021-07-15", "12:00", "Europe/London"))
	require.NoError(t, err)

	assert.Equal(t, 0, winter.OffsetSeconds)
	assert.Equal(t, 3600, summer.OffsetSeconds)
	assert.True(t, summer.DST)
	assert.Equal(t, 11, summer.UTC.Hour())
}

func TestResolve_HistoricalTaiwanDST(t *testing.T) {
	inst, err := Resolve(moment(t, "1979-08-01", "12:00", "Asia/Taipei"))
	require.NoError(t, err)

	assert.True(t, inst.DST)
	assert.Equal(t, 9*3600, inst.OffsetSeconds)
	assert.Equal(t, 3, inst.UTC.Hour())
}

func TestResolve_FoldPrefersStandardTime(t *testing.T) {
	// 01:30 happens twice in New York on 2021-11-07
	inst, err := Resolve(moment(t, "2021-11-07", "01:30", "America/New_York"))
	require.NoError(t, err)

	assert.False(t, inst.DST)
	assert.Equal(t, -5*3600, inst.OffsetSeconds)
	assert.Equal(t, time.Date(2021, time.November, 7, 6, 30, 0, 0, time.UTC), inst.UTC)
}

func TestResolve_GapIsAmbiguous(t *testing.T) {
	// 02:30 never happens in New York on 2021-03-14
	_, err := Resolve(moment(t, "2021-03-14", "02:30", "America/New_York"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmbiguousLocalTime)
	assert.Equal(t, "time", domain.FieldOf(err))
}

func TestResolve_InvalidTimezone(t *testing.T) {
	tests := []struct {
		name string
		tz   string
	}{
		{"unknown zone", "Mars/Olympus"},
		{"empty zone", ""},
		{"host local zone", "Local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(moment(t, "1990-01-15", "08:30", tt.tz))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
			assert.Equal(t, "timezone", domain.FieldOf(err))
		})
	}
}

func TestResolve_RejectsUnvalidatedDate(t *testing.T) {
	m := domain.BirthMoment{
		Date:     domain.CivilDate{Year: 1900, Month: time.February, Day: 29},
		Clock:    domain.ClockTime{Hour: 10},
		Timezone: "Asia/Taipei",
	}
	_, err := Resolve(m)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestFromTime_JDEIncludesDeltaT(t *testing.T) {
	inst := FromTime(time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC))

	assert.InDelta(t, J2000, inst.JD, 1e-9)
	assert.InDelta(t, 63.8, inst.DeltaT, 0.2)
	assert.InDelta(t, J2000+inst.DeltaT/86400, inst.JDE(), 1e-12)
}
