// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	RedirectStoreMemory   = "memory"
	RedirectStoreDynamoDB = "dynamodb"
)

// Config holds the settings read by the binaries.
type Config struct {
	HTTPPort           string
	LogLevel           slog.Level
	StartingBalance    decimal.Decimal
	RedirectStore      string
	RedirectsTableName string
	RedirectTTL        time.Duration
	EventsQueueURL     string
}

// Load reads a .env file if one exists, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment, applying defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getenv("HTTP_PORT", "8080"),
		RedirectStore:      strings.ToLower(getenv("REDIRECT_STORE", RedirectStoreMemory)),
		RedirectsTableName: os.Getenv("DYNAMODB_REDIRECTS_TABLE_NAME"),
		EventsQueueURL:     os.Getenv("SQS_EVENTS_QUEUE_URL"),
		StartingBalance:    decimal.Zero,
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if raw := os.Getenv("STARTING_BALANCE"); raw != "" {
		balance, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
		}
		if balance.IsNegative() {
			return nil, fmt.Errorf("STARTING_BALANCE must not be negative: %s", raw)
		}
		cfg.StartingBalance = balance
	}

	ttl, err := time.ParseDuration(getenv("REDIRECT_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIRECT_TTL: %w", err)
	}
	cfg.RedirectTTL = ttl

	switch cfg.RedirectStore {
	case RedirectStoreMemory:
	case RedirectStoreDynamoDB:
		if cfg.RedirectsTableName == "" {
			return nil, fmt.Errorf("DYNAMODB_REDIRECTS_TABLE_NAME must be set when REDIRECT_STORE is %s", RedirectStoreDynamoDB)
		}
	default:
		return nil, fmt.Errorf("unknown REDIRECT_STORE %q", cfg.RedirectStore)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
