// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone rules independent of the host

	"github.com/joho/godotenv"
)

// House system names accepted by HOUSE_SYSTEM
const (
	HouseSystemPlacidus = "placidus"
	HouseSystemEqual    = "equal"
)

// Leap month policies accepted by LEAP_MONTH_POLICY
const (
	LeapMonthSplit = "split" // days 16+ of a leap month count as the following month
	LeapMonthSame  = "same"  // a leap month always counts as the month it repeats
)

// Config holds application configuration
type Config struct {
	LogLevel         string
	LogPretty        bool
	HouseSystem      string
	LeapMonthPolicy  string
	CacheSize        int // Max memoized charts per pipeline, 0 disables the cache
	DefaultTimezone  string
	DefaultLatitude  float64
	DefaultLongitude float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getEnvAsBool("LOG_PRETTY", true),
		HouseSystem:      strings.ToLower(getEnv("HOUSE_SYSTEM", HouseSystemPlacidus)),
		LeapMonthPolicy:  strings.ToLower(getEnv("LEAP_MONTH_POLICY", LeapMonthSplit)),
		CacheSize:        getEnvAsInt("CHART_CACHE_SIZE", 1024),
		DefaultTimezone:  getEnv("DEFAULT_TIMEZONE", "Asia/Taipei"),
		DefaultLatitude:  getEnvAsFloat("DEFAULT_LATITUDE", 25.033),
		DefaultLongitude: getEnvAsFloat("DEFAULT_LONGITUDE", 121.565),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if configuration values are usable
func (c *Config) Validate() error {
	switch c.HouseSystem {
	case HouseSystemPlacidus, HouseSystemEqual:
	default:
		return fmt.Errorf("unsupported HOUSE_SYSTEM %q (want %s or %s)", c.HouseSystem, HouseSystemPlacidus, HouseSystemEqual)
	}

	switch c.LeapMonthPolicy {
	case LeapMonthSplit, LeapMonthSame:
	default:
		return fmt.Errorf("unsupported LEAP_MONTH_POLICY %q (want %s or %s)", c.LeapMonthPolicy, LeapMonthSplit, LeapMonthSame)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("CHART_CACHE_SIZE must not be negative, got %d", c.CacheSize)
	}

	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil || c.DefaultTimezone == "" {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE %q", c.DefaultTimezone)
	}

	if c.DefaultLatitude < -90 || c.DefaultLatitude > 90 {
		return fmt.Errorf("DEFAULT_LATITUDE out of range: %v", c.DefaultLatitude)
	}
	if c.DefaultLongitude < -180 || c.DefaultLongitude > 180 {
		return fmt.Errorf("DEFAULT_LONGITUDE out of range: %v", c.DefaultLongitude)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
