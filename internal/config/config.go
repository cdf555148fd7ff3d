// Package config loads the lrucache command configuration from YAML.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"
)

// Provider kinds.
const (
	ProviderMemory   = "memory"
	ProviderRedis    = "redis"
	ProviderPostgres = "postgres"
)

// Config is the root configuration document.
type Config struct {
	Cache    CacheConfig    `yaml:"cache"`
	Provider ProviderConfig `yaml:"provider"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CacheConfig sizes the cache.
type CacheConfig struct {
	Capacity int    `yaml:"capacity"`
	Name     string `yaml:"name"` // metrics label
}

// ProviderConfig selects and configures the backing data source.
type ProviderConfig struct {
	Kind     string         `yaml:"kind"`
	Memory   MemoryConfig   `yaml:"memory"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MemoryConfig configures the in-memory provider.
type MemoryConfig struct {
	// Populate fills keys "0".."n-1" with their own string form.
	Populate int `yaml:"populate"`
}

// RedisConfig configures the Redis provider.
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	Prefix       string        `yaml:"prefix"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	PoolSize     int           `yaml:"pool_size"`
}

// PostgresConfig configures the Postgres provider.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Table    string `yaml:"table"`
	MaxConns int32  `yaml:"max_conns"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables the endpoint.
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Capacity: 1000,
			Name:     "default",
		},
		Provider: ProviderConfig{
			Kind:   ProviderMemory,
			Memory: MemoryConfig{Populate: 100},
			Redis: RedisConfig{
				Addr:         "localhost:6379",
				DialTimeout:  5 * time.Second,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
				PoolSize:     10,
			},
			Postgres: PostgresConfig{
				Table:    "cache_values",
				MaxConns: 4,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the command cannot run with.
func (c *Config) Validate() error {
	if c.Cache.Capacity < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "cache.capacity must be >= 0, got %d", c.Cache.Capacity)
	}

	switch c.Provider.Kind {
	case ProviderMemory:
		if c.Provider.Memory.Populate < 0 {
			return errors.New(errors.CodeInvalidConfig, "provider.memory.populate must be >= 0")
		}
	case ProviderRedis:
		if c.Provider.Redis.Addr == "" {
			return errors.New(errors.CodeInvalidConfig, "provider.redis.addr is required")
		}
	case ProviderPostgres:
		if c.Provider.Postgres.DSN == "" {
			return errors.New(errors.CodeInvalidConfig, "provider.postgres.dsn is required")
		}
	default:
		return errors.Newf(errors.CodeInvalidConfig, "unknown provider.kind %q", c.Provider.Kind)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.Newf(errors.CodeInvalidConfig, "unknown log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Newf(errors.CodeInvalidConfig, "unknown log.format %q", c.Log.Format)
	}
	return nil
}
