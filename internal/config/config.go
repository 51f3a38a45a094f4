// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the server configuration.
type Config struct {
	Addr string `env:"ROOMIE_ADDR" envDefault:":8080"`

	StorageDriver string `env:"ROOMIE_STORAGE_DRIVER" envDefault:"sqlite"`
	DBPath        string `env:"ROOMIE_DB_PATH" envDefault:"./data/roomie.db"`
	DatabaseURL   string `env:"ROOMIE_DATABASE_URL"`

	// JWTSecret is the HS256 secret shared with the auth provider.
	JWTSecret string        `env:"ROOMIE_JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"ROOMIE_JWT_TTL" envDefault:"24h"`

	Currency string `env:"ROOMIE_CURRENCY" envDefault:"USD"`

	DiscordWebhookURL string   `env:"ROOMIE_DISCORD_WEBHOOK_URL"`
	CORSOrigins       []string `env:"ROOMIE_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	StaticPath        string   `env:"ROOMIE_STATIC_PATH"`
}

// Load reads .env if present, then parses and validates the environment.
func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse parses and validates the current environment without touching .env.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("ROOMIE_DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("ROOMIE_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("ROOMIE_JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("ROOMIE_JWT_TTL must be positive")
	}
	if _, err := currency.ParseISO(c.Currency); err != nil {
		return fmt.Errorf("unknown currency %q: %w", c.Currency, err)
	}
	return nil
}
