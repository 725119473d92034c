// Package config provides configuration settings for the URL shortener service.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Supported mapping store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds the configuration settings for the application.
type Config struct {
	ServerAddress   string        `env:"SERVER_ADDRESS" envDefault:":3000"`
	HostURL         string        `env:"HOST_URL"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	SlugLength      int `env:"SLUG_LENGTH" envDefault:"6"`
	MaxSlugAttempts int `env:"MAX_SLUG_ATTEMPTS" envDefault:"10"`

	StoreBackend   string `env:"STORE_BACKEND" envDefault:"memory"`
	MemoryCapacity int    `env:"MEMORY_CAPACITY" envDefault:"1000000"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"shortener.db"`
	PostgresDSN    string `env:"POSTGRES_DSN"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		ServerAddress:   ":3000",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		SlugLength:      6,
		MaxSlugAttempts: 10,
		StoreBackend:    BackendMemory,
		MemoryCapacity:  1000000,
		RedisAddr:       "localhost:6379",
		SQLitePath:      "shortener.db",
		LogLevel:        "info",
	}
}

// Load reads the configuration from environment variables, falling back to
// the defaults for anything unset, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used to start the service.
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return errors.New("server address cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if c.SlugLength < 5 || c.SlugLength > 6 {
		return fmt.Errorf("slug length must be 5 or 6, got %d", c.SlugLength)
	}
	if c.MaxSlugAttempts <= 0 {
		return errors.New("max slug attempts must be positive")
	}

	switch c.StoreBackend {
	case BackendMemory:
		if c.MemoryCapacity <= 0 {
			return errors.New("memory capacity must be positive")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("redis address is required for the redis backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite path is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	return nil
}
