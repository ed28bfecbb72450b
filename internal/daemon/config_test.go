package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.API.Addr(); got != "127.0.0.1:8090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8090", got)
	}
	if cfg.Database.Path == "" {
		t.Error("default database path is empty")
	}
	if cfg.Auth.TTL() != time.Hour {
		t.Errorf("TTL() = %v, want 1h", cfg.Auth.TTL())
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
}

func TestAuthConfigTTL(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"24h", 24 * time.Hour},
		{"", time.Hour},        // unset falls back
		{"garbage", time.Hour}, // unparsable falls back
		{"-5m", time.Hour},     // non-positive falls back
	}
	for _, tt := range tests {
		c := AuthConfig{TokenTTL: tt.in}
		if got := c.TTL(); got != tt.want {
			t.Errorf("TTL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 8090 {
		t.Errorf("port = %d, want default 8090", cfg.API.Port)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[api]
host = "0.0.0.0"
port = 9000

[auth]
token_ttl = "15m"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.API.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:9000", got)
	}
	if cfg.Auth.TTL() != 15*time.Minute {
		t.Errorf("TTL() = %v, want 15m", cfg.Auth.TTL())
	}
	// Sections absent from the file keep their defaults.
	if cfg.Auth.Secret != "dev-only-secret" {
		t.Errorf("secret = %q, want default", cfg.Auth.Secret)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nport = 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HOURBOOK_API_PORT", "9001")
	t.Setenv("HOURBOOK_AUTH_SECRET", "from-env")
	t.Setenv("HOURBOOK_METRICS_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 9001 {
		t.Errorf("port = %d, want env override 9001", cfg.API.Port)
	}
	if cfg.Auth.Secret != "from-env" {
		t.Errorf("secret = %q, want from-env", cfg.Auth.Secret)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled by env")
	}
}
