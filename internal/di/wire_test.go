package di

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huikaichung/knowyourself/internal/config"
	"github.com/huikaichung/knowyourself/internal/modules/houses"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:         "info",
		HouseSystem:      config.HouseSystemEqual,
		LeapMonthPolicy:  config.LeapMonthSame,
		CacheSize:        8,
		DefaultTimezone:  "Asia/Taipei",
		DefaultLatitude:  25.033,
		DefaultLongitude: 121.565,
	}
}

func TestWire(t *testing.T) {
	log := zerolog.Nop()

	container, err := Wire(testConfig(), log)
	require.NoError(t, err)
	require.NotNil(t, container)

	assert.NotNil(t, container.WesternService)
	assert.NotNil(t, container.ZiweiService)
	assert.NotNil(t, container.ChartsService)
	assert.Equal(t, houses.Equal, container.WesternService.HouseSystem())

	chart, err := container.ChartsService.CalculatePreciseChart("1990-01-15", "08:30", 25.033, 121.565, "Asia/Taipei")
	require.NoError(t, err)
	assert.Equal(t, houses.Equal, chart.HouseSystem)
}

func TestWire_RejectsInvalidConfig(t *testing.T) {
	_, err := Wire(nil, zerolog.Nop())
	assert.Error(t, err)

	cfg := testConfig()
	cfg.HouseSystem = "koch"
	_, err = Wire(cfg, zerolog.Nop())
	assert.Error(t, err)
}
