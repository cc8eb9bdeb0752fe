package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/huikaichung/knowyourself/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container.
// This is the main entry point for dependency injection.
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	container := &Container{Config: cfg}
	if err := InitializeServices(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	log.Debug().Msg("Dependency injection wiring completed successfully")

	return container, nil
}
