package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Store struct {
		Backend    string `yaml:"backend"` // "memory", "sqlite", or "postgres"
		SQLitePath string `yaml:"sqlite_path"`
		Postgres   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Name     string `yaml:"name"`
			SSLMode  string `yaml:"ssl_mode"`
			MinConns int    `yaml:"min_conns"`
			MaxConns int    `yaml:"max_conns"`
		} `yaml:"postgres"`
	} `yaml:"store"`
	Dataset struct {
		Namespace string `yaml:"namespace"`
		Symbol    string `yaml:"symbol"`
		File      string `yaml:"file"`
	} `yaml:"dataset"`
	Decoder struct {
		OffsetHours int    `yaml:"offset_hours"`
		Policy      string `yaml:"policy"` // "abort" or "skip"
	} `yaml:"decoder"`
	Replay struct {
		Cron          string `yaml:"cron"`
		TickStepHours int    `yaml:"tick_step_hours"`
	} `yaml:"replay"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("VAULT_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("VAULT_SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("VAULT_PG_HOST"); v != "" {
		cfg.Store.Postgres.Host = v
	}
	if v := os.Getenv("VAULT_PG_PASSWORD"); v != "" {
		cfg.Store.Postgres.Password = v
	}
	if v := os.Getenv("VAULT_SYMBOL"); v != "" {
		cfg.Dataset.Symbol = v
	}
	if v := os.Getenv("VAULT_DATASET"); v != "" {
		cfg.Dataset.File = v
	}
	if v := os.Getenv("VAULT_OFFSET_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Decoder.OffsetHours = n
		}
	}
	if v := os.Getenv("VAULT_REPLAY_CRON"); v != "" {
		cfg.Replay.Cron = v
	}

	// Defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = "data/tickvault.db"
	}
	if cfg.Store.Postgres.Port == 0 {
		cfg.Store.Postgres.Port = 5432
	}
	if cfg.Dataset.Namespace == "" {
		cfg.Dataset.Namespace = "CustomData"
	}
	if cfg.Dataset.Symbol == "" {
		cfg.Dataset.Symbol = "ExampleCustomData"
	}
	if cfg.Decoder.OffsetHours == 0 {
		cfg.Decoder.OffsetHours = 20
	}
	if cfg.Decoder.Policy == "" {
		cfg.Decoder.Policy = "abort"
	}
	if cfg.Replay.Cron == "" {
		cfg.Replay.Cron = "0 0 * * * *"
	}
	if cfg.Replay.TickStepHours == 0 {
		cfg.Replay.TickStepHours = 1
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("store.backend must be memory, sqlite, or postgres")
	}
	if c.Store.Backend == "postgres" && c.Store.Postgres.Host == "" {
		return fmt.Errorf("store.postgres.host is required for the postgres backend")
	}
	if c.Dataset.Symbol == "" {
		return fmt.Errorf("dataset.symbol is required")
	}
	if c.Dataset.File == "" {
		return fmt.Errorf("dataset.file is required")
	}
	if c.Decoder.Policy != "abort" && c.Decoder.Policy != "skip" {
		return fmt.Errorf("decoder.policy must be abort or skip")
	}
	if c.Replay.TickStepHours <= 0 {
		return fmt.Errorf("replay.tick_step_hours must be positive")
	}
	return nil
}
