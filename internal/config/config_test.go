package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Port:         "8082",
		SQLiteDBPath: "./data/resto.db",
		DataBackend:  "memory",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid memory config", func(c *Config) {}, ""},
		{"valid sqlite config", func(c *Config) { c.DataBackend = "sqlite" }, ""},
		{"valid auth config", func(c *Config) {
			c.AuthURL = "https://id.example.com"
			c.AuthAPIKey = "key"
		}, ""},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"unknown backend", func(c *Config) { c.DataBackend = "redis" }, "invalid data backend"},
		{"sqlite without path", func(c *Config) {
			c.DataBackend = "sqlite"
			c.SQLiteDBPath = ""
		}, "SQLite database path cannot be empty"},
		{"auth url with bad scheme", func(c *Config) {
			c.AuthURL = "ftp://id.example.com"
			c.AuthAPIKey = "key"
		}, "invalid auth URL scheme"},
		{"auth url without api key", func(c *Config) {
			c.AuthURL = "https://id.example.com"
		}, "auth API key cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8082" {
		t.Fatalf("default Port = %s, want 8082", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("default DataBackend = %s, want memory", cfg.DataBackend)
	}
	if cfg.AuthURL != "" {
		t.Fatalf("default AuthURL = %s, want empty", cfg.AuthURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "/tmp/test.db" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}
