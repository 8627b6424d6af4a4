// Package config loads the service configuration from environment
// variables. cmd binaries call godotenv before Load so a local .env file
// works in development.
package config

import (
	"os"
	"strconv"

	"modshift/domain/vetting"
	"modshift/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Pipeline PipelineConfig
	Batch    BatchConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// PipelineConfig holds the significance pipeline constants
type PipelineConfig struct {
	PhaseOffset float64
	OverRes     int
}

// BatchConfig holds batch vetting settings
type BatchConfig struct {
	Workers int64
}

// Load reads configuration from environment variables and validates it.
// requireDB controls whether a missing DATABASE_URL is an error; the CLI
// runs without persistence.
func Load(requireDB bool) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("SERVER_PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Pipeline: PipelineConfig{
			PhaseOffset: getEnvFloatOrDefault("MODSHIFT_PHASE_OFFSET", vetting.DefaultConfig().PhaseOffset),
			OverRes:     getEnvIntOrDefault("MODSHIFT_OVERRES", vetting.DefaultConfig().OverRes),
		},
		Batch: BatchConfig{
			Workers: int64(getEnvIntOrDefault("BATCH_WORKERS", 4)),
		},
	}

	if requireDB && cfg.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	if cfg.Pipeline.OverRes < 1 {
		return nil, errors.ConfigInvalid("MODSHIFT_OVERRES must be at least 1")
	}
	if cfg.Pipeline.PhaseOffset < 0 || cfg.Pipeline.PhaseOffset >= 1 {
		return nil, errors.ConfigInvalid("MODSHIFT_PHASE_OFFSET must be in [0, 1)")
	}
	if cfg.Batch.Workers < 1 {
		return nil, errors.ConfigInvalid("BATCH_WORKERS must be at least 1")
	}
	return cfg, nil
}

// PipelineSettings converts the loaded constants into the domain config.
func (c *Config) PipelineSettings() vetting.Config {
	return vetting.Config{
		PhaseOffset: c.Pipeline.PhaseOffset,
		OverRes:     c.Pipeline.OverRes,
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
