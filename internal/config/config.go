package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Latency LatencyConfig `yaml:"latency"`
	Catalog CatalogConfig `yaml:"catalog"`
	Rules   RulesConfig   `yaml:"rules"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	Mode            string        `yaml:"mode"             env:"GIN_MODE"                env-default:"release"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver     string `yaml:"driver"      env:"STORAGE_DRIVER"      env-default:"file"`
	Namespace  string `yaml:"namespace"   env:"STORAGE_NAMESPACE"   env-default:"user1"`
	Dir        string `yaml:"dir"         env:"STORAGE_DIR"         env-default:"./data/store"`
	SQLitePath string `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH" env-default:"./data/cardbinder.db"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LatencyConfig holds the artificial delays standing in for network round trips.
// A zero duration disables that delay.
type LatencyConfig struct {
	Read    time.Duration `yaml:"read"    env:"LATENCY_READ"    env-default:"300ms"`
	Write   time.Duration `yaml:"write"   env:"LATENCY_WRITE"   env-default:"200ms"`
	System  time.Duration `yaml:"system"  env:"LATENCY_SYSTEM"  env-default:"100ms"`
	Settle  time.Duration `yaml:"settle"  env:"LATENCY_SETTLE"  env-default:"200ms"`
	Refresh time.Duration `yaml:"refresh" env:"LATENCY_REFRESH" env-default:"300ms"`
}

// CatalogConfig controls where seed data comes from.
type CatalogConfig struct {
	// DataDir, when set, is scanned for system card CSV files.
	DataDir        string `yaml:"data_dir"        env:"CATALOG_DATA_DIR"`
	RefreshPresets bool   `yaml:"refresh_presets" env:"CATALOG_REFRESH_PRESETS" env-default:"false"`
}

// RulesConfig holds collection limits.
type RulesConfig struct {
	MaxDecks int `yaml:"max_decks"  env:"RULES_MAX_DECKS"  env-default:"10"`
	// CopyLimit caps copies of one card inside a deck; 0 disables the cap.
	CopyLimit int `yaml:"copy_limit" env:"RULES_COPY_LIMIT" env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Drivers lists the accepted storage drivers.
var Drivers = []string{"memory", "file", "sqlite", "postgres"}
