package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/huikaichung/knowyourself/internal/config"
	"github.com/huikaichung/knowyourself/internal/modules/charts"
	"github.com/huikaichung/knowyourself/internal/modules/houses"
	"github.com/huikaichung/knowyourself/internal/modules/western"
	"github.com/huikaichung/knowyourself/internal/modules/ziwei"
)

// InitializeServices creates the chart services from configuration.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	system, err := houses.ParseSystem(cfg.HouseSystem)
	if err != nil {
		return fmt.Errorf("failed to parse house system: %w", err)
	}
	policy, err := ziwei.ParseLeapPolicy(cfg.LeapMonthPolicy)
	if err != nil {
		return fmt.Errorf("failed to parse leap month policy: %w", err)
	}

	container.WesternService = western.NewService(system, log)
	container.ZiweiService = ziwei.NewService(policy, log)
	container.ChartsService = charts.NewService(container.WesternService, container.ZiweiService, cfg.CacheSize, log)

	log.Debug().
		Str("house_system", string(system)).
		Str("leap_month_policy", string(policy)).
		Int("cache_size", cfg.CacheSize).
		Msg("Chart services initialized")

	return nil
}
