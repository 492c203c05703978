package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Latency.validate(); err != nil {
		return fmt.Errorf("latency: %w", err)
	}

	if c.Rules.MaxDecks <= 0 {
		return fmt.Errorf("rules.max_decks must be > 0 (got %d)", c.Rules.MaxDecks)
	}
	if c.Rules.CopyLimit < 0 {
		return fmt.Errorf("rules.copy_limit must be >= 0 (got %d)", c.Rules.CopyLimit)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	if !slices.Contains(Drivers, s.Driver) {
		return fmt.Errorf("driver must be one of %s (got %q)", strings.Join(Drivers, ", "), s.Driver)
	}
	switch s.Driver {
	case "file":
		if s.Dir == "" {
			return fmt.Errorf("dir is required for the file driver")
		}
	case "sqlite":
		if s.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if s.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for the postgres driver")
		}
	}
	return nil
}

func (l LatencyConfig) validate() error {
	for name, d := range map[string]int64{
		"read":    int64(l.Read),
		"write":   int64(l.Write),
		"system":  int64(l.System),
		"settle":  int64(l.Settle),
		"refresh": int64(l.Refresh),
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}
