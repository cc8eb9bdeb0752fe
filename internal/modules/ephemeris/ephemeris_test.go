package ephemeris

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/pkg/formulas"
)

// JDE of 1990-01-15 00:30 UT plus a delta T of 56.9s.
const taipeiBirthJDE = 2447906.5208333 + 56.9/86400

func TestNutation_Meeus22a(t *testing.T) {
	tc := centuries(2446895.5)
	dPsi, dEps := Nutation(tc)

	assert.InDelta(t, -3.788, dPsi*3600, 0.5)
	assert.InDelta(t, 9.443, dEps*3600, 0.5)
	assert.InDelta(t, 23.0+26.0/60+27.407/3600, MeanObliquity(tc), 1e-5)
}

func TestSunApparentLongitude_Meeus25a(t *testing.T) {
	assert.InDelta(t, 199.906, SunApparentLongitude(2448908.5), 0.01)
}

func TestMoon_Meeus47a(t *testing.T) {
	lon, lat, dist := moonApparent(centuries(2448724.5))

	assert.InDelta(t, 133.167265, lon, 0.01)
	assert.InDelta(t, -3.229126, lat, 0.01)
	assert.InDelta(t, 368409.7, dist*auKm, 10)
}

func TestVenus_Meeus33a(t *testing.T) {
	pos, err := Compute(Venus, 2448976.5)
	require.NoError(t, err)

	assert.InDelta(t, 313.08102, pos.Longitude, 0.1)
	assert.InDelta(t, -2.08474, pos.Latitude, 0.1)
}

func TestSolveKepler(t *testing.T) {
	// Meeus 30.a: e = 0.100, M = 5 deg gives E = 5.554589 deg
	ecc := solveKepler(formulas.Rad(5), 0.1)
	assert.InDelta(t, 5.554589, formulas.Deg(ecc), 1e-6)
}

func TestCompute_TaipeiBirth(t *testing.T) {
	sun, err := Compute(Sun, taipeiBirthJDE)
	require.NoError(t, err)
	assert.Equal(t, 9, int(sun.Longitude/30), "sun in capricorn")
	assert.InDelta(t, 294.6, sun.Longitude, 0.5)
	assert.InDelta(t, 1.02, sun.Speed, 0.02)

	moon, err := Compute(Moon, taipeiBirthJDE)
	require.NoError(t, err)
	assert.Equal(t, 5, int(moon.Longitude/30), "moon in virgo")
	assert.Greater(t, moon.Speed, 11.0)
	assert.Less(t, moon.Speed, 15.5)
}

func TestComputeAll(t *testing.T) {
	positions, err := ComputeAll(taipeiBirthJDE)
	require.NoError(t, err)
	require.Len(t, positions, len(AllBodies))

	for i, pos := range positions {
		assert.Equal(t, AllBodies[i], pos.Body)
		assert.GreaterOrEqual(t, pos.Longitude, 0.0, pos.Body.String())
		assert.Less(t, pos.Longitude, 360.0, pos.Body.String())
	}
}

func TestComputeAll_Subset(t *testing.T) {
	positions, err := ComputeAll(taipeiBirthJDE, Moon, Sun)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, Moon, positions[0].Body)
	assert.Equal(t, Sun, positions[1].Body)
}

func TestMeanNode_AlwaysRetrograde(t *testing.T) {
	for _, jde := range []float64{2415020.5, taipeiBirthJDE, 2460000.5} {
		pos, err := Compute(MeanNode, jde)
		require.NoError(t, err)
		assert.True(t, pos.Retrograde())
		assert.InDelta(t, -0.053, pos.Speed, 0.002)
	}
}

func TestPlanets_InnerElongationBounded(t *testing.T) {
	sun, err := Compute(Sun, taipeiBirthJDE)
	require.NoError(t, err)

	tests := []struct {
		body Body
		max  float64
	}{
		{Mercury, 28.5},
		{Venus, 47.5},
	}
	for _, tt := range tests {
		t.Run(tt.body.String(), func(t *testing.T) {
			pos, err := Compute(tt.body, taipeiBirthJDE)
			require.NoError(t, err)
			assert.LessOrEqual(t, formulas.Separation(pos.Longitude, sun.Longitude), tt.max)
		})
	}
}

func TestCompute_UnknownBody(t *testing.T) {
	_, err := Compute(Body(42), taipeiBirthJDE)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEphemerisUnavailable))
	assert.Equal(t, "body", domain.FieldOf(err))

	_, err = ComputeAll(taipeiBirthJDE, Sun, Body(-1))
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
}

func TestParseBody(t *testing.T) {
	b, err := ParseBody(" Mean_Node ")
	require.NoError(t, err)
	assert.Equal(t, MeanNode, b)

	text, err := Venus.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "venus", string(text))

	var parsed Body
	require.NoError(t, parsed.UnmarshalText([]byte("pluto")))
	assert.Equal(t, Pluto, parsed)

	_, err = ParseBody("vulcan")
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
}
