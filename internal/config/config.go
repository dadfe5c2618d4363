package config

import (
	"os"
	"strconv"

	"tsinsight/domain/arima"
	"tsinsight/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Engine   arima.Config
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port          string
	MaxUploadSize int64
}

// DatabaseConfig holds optional persistence settings. An empty URL selects
// the in-memory run store.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8080"),
			MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", 10<<20),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Engine: loadEngineConfig(),
	}

	if err := cfg.Engine.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to load engine configuration")
	}
	return cfg, nil
}

// loadEngineConfig starts from the engine defaults and applies overrides.
func loadEngineConfig() arima.Config {
	cfg := arima.DefaultConfig()
	cfg.AutoDiff = getEnvBool("ENGINE_AUTO_DIFF", cfg.AutoDiff)
	cfg.MaxP = getEnvInt("ENGINE_MAX_P", cfg.MaxP)
	cfg.MaxQ = getEnvInt("ENGINE_MAX_Q", cfg.MaxQ)
	cfg.MaxD = getEnvInt("ENGINE_MAX_D", cfg.MaxD)
	cfg.NModels = getEnvInt("ENGINE_N_MODELS", cfg.NModels)
	cfg.SignificanceLevel = getEnvFloat("ENGINE_SIGNIFICANCE", cfg.SignificanceLevel)
	cfg.Alpha = getEnvFloat("ENGINE_ALPHA", cfg.Alpha)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
