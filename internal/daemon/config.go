// Package daemon holds server configuration: TOML file with sensible
// defaults, overridable by HOURBOOK_* environment variables.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// APIConfig configures the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// AuthConfig configures token issuance.
type AuthConfig struct {
	// Secret signs bearer tokens. Must be set for production; the default
	// is only usable for local development.
	Secret   string `toml:"secret"`
	TokenTTL string `toml:"token_ttl"` // Go duration string, e.g. "1h"
}

// TTL parses TokenTTL, falling back to one hour.
func (c AuthConfig) TTL() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir(), "hourbook.db"),
		},
		Auth: AuthConfig{
			Secret:   "dev-only-secret",
			TokenTTL: "1h",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(homeDir(), "config.toml")
}

func homeDir() string {
	if env := os.Getenv("HOURBOOK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hourbook")
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file is not an error; defaults plus env
// apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides config fields from HOURBOOK_* variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("HOURBOOK_API_HOST"); v != "" {
		c.API.Host = v
	}
	if v := os.Getenv("HOURBOOK_API_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.API.Port = p
		}
	}
	if v := os.Getenv("HOURBOOK_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("HOURBOOK_AUTH_SECRET"); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv("HOURBOOK_TOKEN_TTL"); v != "" {
		c.Auth.TokenTTL = v
	}
	if v := os.Getenv("HOURBOOK_METRICS_ENABLED"); v != "" {
		c.Metrics.Enabled = v == "1" || v == "true"
	}
}
