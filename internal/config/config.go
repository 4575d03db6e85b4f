// Package config reads server settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mmynk/tripsplit/internal/currency"
	"github.com/mmynk/tripsplit/internal/rates"
)

// Config holds every tunable of the server.
type Config struct {
	Port   int
	DBPath string

	JWTSecret string
	TokenTTL  time.Duration

	RatesURL      string
	RatesBase     string
	RatesTTL      time.Duration
	RatesTimeout  time.Duration
	RatesInterval time.Duration
}

const devSecret = "dev-secret-change-me"

// Load builds a Config from environment variables, using defaults for anything unset or unparsable.
func Load() Config {
	cfg := Config{
		Port:          getEnvInt("PORT", 8080),
		DBPath:        getEnv("DB_PATH", "./data/tripsplit.db"),
		JWTSecret:     getEnv("JWT_SECRET", devSecret),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 24*time.Hour),
		RatesURL:      getEnv("RATES_URL", rates.DefaultURL),
		RatesBase:     getEnv("RATES_BASE", currency.Default),
		RatesTTL:      getEnvDuration("RATES_TTL", rates.DefaultTTL),
		RatesTimeout:  getEnvDuration("RATES_TIMEOUT", 10*time.Second),
		RatesInterval: getEnvDuration("RATES_REFRESH", time.Hour),
	}
	if cfg.JWTSecret == devSecret {
		slog.Warn("JWT_SECRET not set, using development secret")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		slog.Warn("Ignoring invalid integer setting", "key", key, "value", value)
		return fallback
	}
	return n
}

// getEnvDuration accepts Go durations such as "90s" or "1h"; non-positive values fall back.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("Ignoring invalid duration setting", "key", key, "value", value)
		return fallback
	}
	return d
}
