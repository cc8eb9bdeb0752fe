package houses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/pkg/formulas"
)

const obliquity = 23.4406

func TestAscendant_Taipei(t *testing.T) {
	// 1990-01-15 08:30 Asia/Taipei, local sidereal time 16.218h
	asc := Ascendant(16.218*15, 25.033, obliquity)
	assert.Equal(t, 10, int(asc/30), "aquarius rising")
	assert.InDelta(t, 324.63, asc, 0.05)
}

func TestMidheaven(t *testing.T) {
	assert.InDelta(t, 0.0, Midheaven(0, obliquity), 1e-9)
	assert.InDelta(t, 90.0, Midheaven(90, obliquity), 1e-9)
	assert.InDelta(t, 180.0, Midheaven(180, obliquity), 1e-9)
}

func TestCalculate_PlacidusLondon(t *testing.T) {
	// Raphael's table for London at sidereal time 0h
	res, err := Calculate(Input{RAMC: 0, Latitude: 51.5, Obliquity: obliquity}, Placidus)
	require.NoError(t, err)

	assert.Equal(t, Placidus, res.System)
	assert.InDelta(t, 116.57, res.Ascendant, 0.05)
	assert.InDelta(t, 0.0, res.Midheaven, 1e-9)

	want := map[int]float64{
		11: 38.65,
		12: 82.44,
		2:  132.62,
		3:  152.55,
	}
	for house, lon := range want {
		assert.InDelta(t, lon, res.Cusps[house-1], 0.05, "cusp %d", house)
	}
	assert.InDelta(t, 180.0, res.Cusps[3], 1e-9, "IC opposes MC")
	assert.InDelta(t, formulas.Normalize360(res.Ascendant+180), res.Cusps[6], 1e-9)
}

func TestCalculate_CuspsOrderedCounterclockwise(t *testing.T) {
	inputs := []Input{
		{RAMC: 243.27, Latitude: 25.033, Obliquity: obliquity},
		{RAMC: 123.4, Latitude: -33.9, Obliquity: obliquity},
		{RAMC: 300, Latitude: 60, Obliquity: obliquity},
		{RAMC: 17, Latitude: 0, Obliquity: obliquity},
	}
	for _, in := range inputs {
		for _, sys := range []System{Placidus, Equal} {
			res, err := Calculate(in, sys)
			require.NoError(t, err)

			total := 0.0
			for i := 0; i < 12; i++ {
				span := formulas.Normalize360(res.Cusps[(i+1)%12] - res.Cusps[i])
				assert.Greater(t, span, 0.0)
				total += span
			}
			assert.InDelta(t, 360.0, total, 1e-6)
		}
	}
}

func TestCalculate_Equal(t *testing.T) {
	res, err := Calculate(Input{RAMC: 243.27, Latitude: 25.033, Obliquity: obliquity}, Equal)
	require.NoError(t, err)

	for i, c := range res.Cusps {
		assert.InDelta(t, formulas.Normalize360(res.Ascendant+float64(i)*30), c, 1e-9)
	}
}

func TestCalculate_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
	}{
		{"near north pole", 89.9},
		{"south pole", -90},
		{"inside arctic circle", 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(Input{RAMC: 100, Latitude: tt.lat, Obliquity: obliquity}, Placidus)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDegenerateAscendant)
			assert.Equal(t, "latitude", domain.FieldOf(err))
		})
	}
}

func TestCalculate_InvalidLatitude(t *testing.T) {
	_, err := Calculate(Input{RAMC: 0, Latitude: 91, Obliquity: obliquity}, Equal)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestHouseOf(t *testing.T) {
	res, err := Calculate(Input{RAMC: 0, Latitude: 51.5, Obliquity: obliquity}, Placidus)
	require.NoError(t, err)

	assert.Equal(t, 1, res.HouseOf(res.Ascendant))
	assert.Equal(t, 1, res.HouseOf(res.Ascendant+1))
	assert.Equal(t, 12, res.HouseOf(res.Ascendant-1))
	assert.Equal(t, 10, res.HouseOf(res.Midheaven+0.5))
	assert.Equal(t, 4, res.HouseOf(180.5))
}

func TestParseSystem(t *testing.T) {
	s, err := ParseSystem(" Equal ")
	require.NoError(t, err)
	assert.Equal(t, Equal, s)

	_, err = ParseSystem("koch")
	assert.Error(t, err)
}
