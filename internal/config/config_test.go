package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Driver: "memory"},
		Rules:   RulesConfig{MaxDecks: 10},
	}
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "redis" }},
		{name: "file without dir", mutate: func(c *Config) { c.Storage.Driver = "file"; c.Storage.Dir = "" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.Driver = "sqlite"; c.Storage.SQLitePath = "" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = "postgres" }},
		{name: "negative latency", mutate: func(c *Config) { c.Latency.Write = -time.Millisecond }},
		{name: "no decks allowed", mutate: func(c *Config) { c.Rules.MaxDecks = 0 }},
		{name: "negative copy limit", mutate: func(c *Config) { c.Rules.CopyLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_NormalizesDriver(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Storage.Driver = "  SQLite "
	cfg.Storage.SQLitePath = "x.db"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
}

func TestLoad_FromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
storage:
  driver: memory
latency:
  write: 50ms
rules:
  max_decks: 5
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("RULES_COPY_LIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 50*time.Millisecond, cfg.Latency.Write)
	assert.Equal(t, 300*time.Millisecond, cfg.Latency.Read)
	assert.Equal(t, 5, cfg.Rules.MaxDecks)
	assert.Equal(t, 3, cfg.Rules.CopyLimit)
	assert.Equal(t, "user1", cfg.Storage.Namespace)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
