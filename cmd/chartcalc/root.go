package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/huikaichung/knowyourself/internal/config"
	"github.com/huikaichung/knowyourself/internal/di"
	"github.com/huikaichung/knowyourself/pkg/logger"
)

// app carries state shared by the subcommands once the root pre-run has wired it.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	container *di.Container

	// flag overrides
	logLevel    string
	houseSystem string
	leapPolicy  string
	compact     bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "chartcalc",
		Short: "Western natal and Zi Wei Dou Shu chart calculator",
		Long: `chartcalc computes a tropical natal chart (Placidus or equal houses) and a
Zi Wei Dou Shu chart from a birth date, time and place, printing JSON.

Configuration is read from the environment (or a .env file) and can be
overridden with flags:
  LOG_LEVEL, LOG_PRETTY, HOUSE_SYSTEM, LEAP_MONTH_POLICY, CHART_CACHE_SIZE,
  DEFAULT_TIMEZONE, DEFAULT_LATITUDE, DEFAULT_LONGITUDE`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.houseSystem, "house-system", "", "house system (placidus or equal)")
	root.PersistentFlags().StringVar(&a.leapPolicy, "leap-policy", "", "leap month policy (split or same)")
	root.PersistentFlags().BoolVar(&a.compact, "compact", false, "print compact JSON")

	root.AddCommand(
		newWesternCmd(a),
		newZiweiCmd(a),
		newReadingCmd(a),
		newBatchCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.houseSystem != "" {
		cfg.HouseSystem = strings.ToLower(a.houseSystem)
	}
	if a.leapPolicy != "" {
		cfg.LeapMonthPolicy = strings.ToLower(a.leapPolicy)
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: cmd.ErrOrStderr(),
	})
	logger.SetGlobalLogger(a.log)

	container, err := di.Wire(cfg, a.log)
	if err != nil {
		return err
	}
	a.container = container

	a.log.Debug().
		Str("house_system", cfg.HouseSystem).
		Str("leap_month_policy", cfg.LeapMonthPolicy).
		Int("cache_size", cfg.CacheSize).
		Msg("Configuration loaded")
	return nil
}

func (a *app) print(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if !a.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
