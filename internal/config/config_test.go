package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "config.yaml", "baseURL: http://api.local:3333\ntimeout: 5\ncurrency: R$\n"},
		{"yml", "config.yml", "baseURL: http://api.local:3333\ntimeout: 5\ncurrency: R$\n"},
		{"json", "config.json", `{"baseURL":"http://api.local:3333","timeout":5,"currency":"R$"}`},
		{"jsonc", "config.jsonc", "{\n  // backend\n  \"baseURL\": \"http://api.local:3333\",\n  \"timeout\": 5, /* seconds */\n  \"currency\": \"R$\",\n}"},
		{"toml", "config.toml", "baseURL = \"http://api.local:3333\"\ntimeout = 5\ncurrency = \"R$\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.BaseURL != "http://api.local:3333" {
				t.Errorf("BaseURL = %q", cfg.BaseURL)
			}
			if cfg.RequestTimeout() != 5*time.Second {
				t.Errorf("RequestTimeout() = %v", cfg.RequestTimeout())
			}
			if cfg.Currency != "R$" {
				t.Errorf("Currency = %q", cfg.Currency)
			}
			// Unset fields keep defaults
			if !cfg.IsHistoryEnabled() {
				t.Error("history should default to enabled")
			}
		})
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := Load(writeConfig(t, "config.ini", "baseURL=x")); err == nil {
		t.Error("expected error for .ini")
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	if _, err := Load(writeConfig(t, "config.yaml", "baseURL: localhost:3333\n")); err == nil {
		t.Error("expected error for base URL without scheme")
	}
}

func TestLoad_TLSSection(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", "baseURL: https://api.local\ntls:\n  caFile: /etc/ca.pem\n  insecureSkipVerify: true\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TLS == nil || cfg.TLS.CAFile != "/etc/ca.pem" || !cfg.TLS.InsecureSkipVerify {
		t.Errorf("TLS = %+v", cfg.TLS)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://env.local:9999")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTimeout, "12")

	cfg, err := Load(writeConfig(t, "config.yaml", "baseURL: http://file.local\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "http://env.local:9999" {
		t.Errorf("BaseURL = %q, env should win", cfg.BaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Timeout != 12 {
		t.Errorf("Timeout = %d", cfg.Timeout)
	}
}

func TestApplyEnv_InvalidTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	if _, err := LoadOrDefault(""); err == nil {
		t.Error("expected error for non-numeric timeout")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
}

func TestInitializeAt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".foodboard")
	if err := InitializeAt(dir); err != nil {
		t.Fatalf("InitializeAt() error = %v", err)
	}

	if _, err := os.Stat(ConfigFile); err != nil {
		t.Fatalf("default config file not created: %v", err)
	}
	if DatabasePath != filepath.Join(dir, "foodboard.db") {
		t.Errorf("DatabasePath = %q", DatabasePath)
	}

	// The generated file must load back
	cfg, err := Load(ConfigFile)
	if err != nil {
		t.Fatalf("Load(default) error = %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestResolvePaths(t *testing.T) {
	if err := InitializeAt(t.TempDir()); err != nil {
		t.Fatalf("InitializeAt() error = %v", err)
	}

	cfg := Default()
	if cfg.ResolveDatabasePath() != DatabasePath {
		t.Errorf("ResolveDatabasePath() = %q", cfg.ResolveDatabasePath())
	}
	if cfg.ResolveLogFile() != LogFile {
		t.Errorf("ResolveLogFile() = %q", cfg.ResolveLogFile())
	}

	cfg.DatabasePath = "/tmp/custom.db"
	if cfg.ResolveDatabasePath() != "/tmp/custom.db" {
		t.Errorf("ResolveDatabasePath() = %q", cfg.ResolveDatabasePath())
	}
}
