package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  name: courtline
  environment: production
  port: 9090
dispatch:
  enabled: true
  cron: "40 8 * * *"
client:
  base_url: http://courtline.internal:9090
  request_timeout: 30s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != 9090 || cfg.App.Environment != "production" {
		t.Errorf("app config = %+v", cfg.App)
	}
	if !cfg.Dispatch.Enabled {
		t.Error("dispatch not enabled")
	}
	if cfg.Client.RequestTimeout != 30*time.Second {
		t.Errorf("request timeout = %v", cfg.Client.RequestTimeout)
	}
	// Unset fields keep their defaults.
	if cfg.Database.Filename != "data/courtline.db" {
		t.Errorf("database filename = %q", cfg.Database.Filename)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.App.Port = 0 }, "port"},
		{"unsupported driver", func(c *Config) { c.Database.Driver = "postgres" }, "unsupported database driver"},
		{"bad cron", func(c *Config) { c.Dispatch.Cron = "every morning" }, "cron expression"},
		{"enabled without cron", func(c *Config) {
			c.Dispatch.Enabled = true
			c.Dispatch.Cron = ""
		}, "required when dispatch is enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
