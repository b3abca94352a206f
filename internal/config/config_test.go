package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DUCT_CONFIG", "DUCT_ADDR", "TOKEN_KEY", "ADMIN_LOGIN", "ADMIN_PASSWORD_HASH", "TOKEN_BOT"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.RateLimit != 5 || cfg.RateBurst != 10 {
		t.Errorf("rate = %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log = %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.TLS() {
		t.Error("TLS() = true without cert")
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() = true without TOKEN_KEY")
	}
	if cfg.BotAPIURL != "https://api.telegram.org" || cfg.BotPollTimeout != 20 {
		t.Errorf("telegram = %s/%d", cfg.BotAPIURL, cfg.BotPollTimeout)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.ini")
	data := `
[server]
addr = :9000
tls_cert = server.crt
tls_key = server.key
shutdown_timeout = 2s

[limits]
rate = 0.5
burst = 3

[log]
level = debug
format = xml

[auth]
token_ttl = 1h
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("ADMIN_LOGIN", "admin")
	t.Setenv("DUCT_ADDR", ":7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("Addr = %q, want env override :7000", cfg.Addr)
	}
	if !cfg.TLS() {
		t.Error("TLS() = false")
	}
	if cfg.ShutdownTimeout != 2*time.Second || cfg.TokenTTL != time.Hour {
		t.Errorf("durations = %v, %v", cfg.ShutdownTimeout, cfg.TokenTTL)
	}
	if cfg.RateLimit != 0.5 || cfg.RateBurst != 3 {
		t.Errorf("rate = %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	// unknown format falls back to text
	if cfg.LogLevel != "debug" || cfg.LogFormat != "text" {
		t.Errorf("log = %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.AuthEnabled() || cfg.AdminLogin != "admin" {
		t.Errorf("auth = %v/%q", cfg.AuthEnabled(), cfg.AdminLogin)
	}
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "other.ini")
	if err := os.WriteFile(path, []byte("[server]\naddr = :6000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DUCT_CONFIG", path)

	cfg, err := Load(DefaultPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":6000" {
		t.Errorf("Addr = %q, want :6000", cfg.Addr)
	}
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	if err := cfg.SetupLogging(); err != nil {
		t.Fatalf("SetupLogging() error: %v", err)
	}
	if log.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", log.GetLevel())
	}

	cfg.LogLevel = "loud"
	if err := cfg.SetupLogging(); err == nil {
		t.Error("expected error for unknown level")
	}
}
