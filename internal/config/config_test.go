package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Alec/Project2-LRUCache/internal/config"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.ProviderMemory, cfg.Provider.Kind)
	assert.Equal(t, 1000, cfg.Cache.Capacity)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
cache:
  capacity: 2
provider:
  kind: redis
  redis:
    addr: redis:6379
    prefix: "lru:"
    read_timeout: 250ms
log:
  level: debug
  format: json
metrics:
  addr: ":9090"
`))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Cache.Capacity)
	assert.Equal(t, "default", cfg.Cache.Name, "unset fields keep defaults")
	assert.Equal(t, config.ProviderRedis, cfg.Provider.Kind)
	assert.Equal(t, "redis:6379", cfg.Provider.Redis.Addr)
	assert.Equal(t, "lru:", cfg.Provider.Redis.Prefix)
	assert.Equal(t, 250*time.Millisecond, cfg.Provider.Redis.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Provider.Redis.DialTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative capacity", func(c *config.Config) { c.Cache.Capacity = -1 }},
		{"unknown provider", func(c *config.Config) { c.Provider.Kind = "memcached" }},
		{"negative populate", func(c *config.Config) { c.Provider.Memory.Populate = -5 }},
		{"redis without addr", func(c *config.Config) {
			c.Provider.Kind = config.ProviderRedis
			c.Provider.Redis.Addr = ""
		}},
		{"postgres without dsn", func(c *config.Config) { c.Provider.Kind = config.ProviderPostgres }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := config.Parse([]byte("cache: [unclosed"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  capacity: 0\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Cache.Capacity)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "cmd", "lrucache", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Cache.Capacity)
	assert.Equal(t, "demo", cfg.Cache.Name)
}
