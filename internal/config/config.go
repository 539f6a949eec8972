// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// DispatchConfig controls the scheduled hand-off of pending reservations
// to the booking authority.
type DispatchConfig struct {
	Enabled bool `yaml:"enabled"`
	// Cron is a standard 5-field cron expression, evaluated in the
	// service timezone (UTC+8).
	Cron string `yaml:"cron"`
}

// ClientConfig is used by the courtline CLI rather than the server.
type ClientConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Client   ClientConfig   `yaml:"client"`
}

// Load loads both .env and yaml configuration.
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file overrides it.
// The dispatch default fires shortly after the campus booking window
// opens each morning.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "courtline"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.Database.Driver = "sqlite"
	cfg.Database.Filename = "data/courtline.db"
	cfg.Dispatch.Enabled = false
	cfg.Dispatch.Cron = "40 8 * * *"
	cfg.Client.BaseURL = "http://localhost:8080"
	cfg.Client.RequestTimeout = 10 * time.Second
	return cfg
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required for sqlite")
	}
	if c.Dispatch.Cron != "" {
		if _, err := cron.ParseStandard(c.Dispatch.Cron); err != nil {
			return fmt.Errorf("invalid dispatch cron expression %q: %w", c.Dispatch.Cron, err)
		}
	}
	if c.Dispatch.Enabled && c.Dispatch.Cron == "" {
		return fmt.Errorf("dispatch cron expression is required when dispatch is enabled")
	}
	return nil
}
