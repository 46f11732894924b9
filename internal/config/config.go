// Package config loads runtime configuration for the algorithm service.
//
// Values are layered: built-in defaults, then an optional YAML file, then the
// environment (a .env file in the working directory is loaded first when
// present). Later layers override earlier ones field by field.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers understood by the runtime.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration document.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	Storage    StorageConfig    `yaml:"storage"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Algorithms AlgorithmsConfig `yaml:"algorithms"`
}

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Host               string        `yaml:"host" env:"HTTP_HOST"`
	Port               int           `yaml:"port" env:"HTTP_PORT"`
	ReadTimeout        time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout       time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
	CORSAllowedOrigins string        `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

// Addr returns host:port for http.Server.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AllowedOrigins splits CORSAllowedOrigins on commas.
func (c HTTPConfig) AllowedOrigins() []string {
	var out []string
	for _, part := range strings.Split(c.CORSAllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
	Output string `yaml:"output" env:"LOG_OUTPUT"`
}

// StorageConfig selects and tunes the user store.
type StorageConfig struct {
	Driver          string        `yaml:"driver" env:"STORAGE_DRIVER"`
	DSN             string        `yaml:"dsn" env:"DATABASE_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
	AutoMigrate     bool          `yaml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE"`
}

// RateLimitConfig configures the per-client limiter. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS             float64 `yaml:"rps" env:"RATE_LIMIT_RPS"`
	Burst           int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
	CleanupSchedule string  `yaml:"cleanup_schedule" env:"RATE_LIMIT_CLEANUP_SCHEDULE"`
}

// AlgorithmsConfig bounds inputs accepted at the HTTP boundary.
type AlgorithmsConfig struct {
	MaxArrayLen   int `yaml:"max_array_len" env:"ALGORITHMS_MAX_ARRAY_LEN"`
	MaxPrimeLimit int `yaml:"max_prime_limit" env:"ALGORITHMS_MAX_PRIME_LIMIT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:               8080,
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       30 * time.Second,
			IdleTimeout:        120 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: "http://localhost:3000,http://localhost:5173",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Storage: StorageConfig{
			Driver:          DriverMemory,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			AutoMigrate:     true,
		},
		RateLimit: RateLimitConfig{
			RPS:             50,
			Burst:           100,
			CleanupSchedule: "@every 5m",
		},
		Algorithms: AlgorithmsConfig{
			MaxArrayLen:   10000,
			MaxPrimeLimit: 1000000,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; when empty
// the CONFIG_FILE environment variable is consulted.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML document at path onto cfg.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Validate rejects configurations the runtime cannot start with.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage driver %s: dsn is required", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http port %d out of range", c.HTTP.Port)
	}
	if c.Algorithms.MaxArrayLen <= 0 {
		return fmt.Errorf("algorithms.max_array_len must be positive")
	}
	if c.Algorithms.MaxPrimeLimit <= 0 {
		return fmt.Errorf("algorithms.max_prime_limit must be positive")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be positive when rps is set")
	}
	return nil
}
