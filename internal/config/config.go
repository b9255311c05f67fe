package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/studiowebux/foodboard/internal/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	DefaultBaseURL  = "http://localhost:3333"
	DefaultTimeout  = 30
	DefaultCurrency = "$"
)

// Environment variables that override file settings
const (
	EnvBaseURL  = "FOODBOARD_BASE_URL"
	EnvLogLevel = "FOODBOARD_LOG_LEVEL"
	EnvTimeout  = "FOODBOARD_TIMEOUT"
)

var (
	// ConfigDir is the global configuration directory (~/.foodboard)
	ConfigDir string

	// ConfigFile is the default config file inside ConfigDir
	ConfigFile string

	// DatabasePath is the SQLite database file for the activity log
	DatabasePath string

	// LogFile is the default log destination
	LogFile string

	// KeybindsFile is the user keybinding override file
	KeybindsFile string
)

// Config holds the dashboard settings
type Config struct {
	BaseURL        string           `json:"baseURL" yaml:"baseURL" toml:"baseURL"`
	Timeout        int              `json:"timeout" yaml:"timeout" toml:"timeout"` // seconds
	Currency       string           `json:"currency" yaml:"currency" toml:"currency"`
	LogFile        string           `json:"logFile,omitempty" yaml:"logFile,omitempty" toml:"logFile"`
	LogLevel       string           `json:"logLevel,omitempty" yaml:"logLevel,omitempty" toml:"logLevel"`
	HistoryEnabled *bool            `json:"historyEnabled,omitempty" yaml:"historyEnabled,omitempty" toml:"historyEnabled"`
	DatabasePath   string           `json:"databasePath,omitempty" yaml:"databasePath,omitempty" toml:"databasePath"`
	KeybindsPath   string           `json:"keybindsPath,omitempty" yaml:"keybindsPath,omitempty" toml:"keybindsPath"`
	TLS            *types.TLSConfig `json:"tls,omitempty" yaml:"tls,omitempty" toml:"tls"`
}

// Initialize sets up the configuration directory and default paths.
// It creates ~/.foodboard/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".foodboard"))
}

// InitializeAt is Initialize rooted at an explicit directory
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "foodboard.db")
	LogFile = filepath.Join(ConfigDir, "foodboard.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default config file if it doesn't exist
	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		data, err := yaml.Marshal(Default())
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(ConfigFile, data, FilePermissions); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	return nil
}

// Default returns the built-in settings
func Default() *Config {
	enabled := true
	return &Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		Currency:       DefaultCurrency,
		LogLevel:       "info",
		HistoryEnabled: &enabled,
	}
}

// Load reads a config file. The format follows the extension:
// .yaml/.yml, .json, .jsonc or .toml. Missing fields keep their defaults and
// environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSONC config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, .json, .jsonc or .toml)", ext)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to the defaults
// (plus environment overrides) otherwise
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overlays FOODBOARD_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = seconds
	}
	return nil
}

// Validate checks the settings that would make every request fail
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("baseURL is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("baseURL must start with http:// or https://, got %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// RequestTimeout returns the per-request timeout
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// IsHistoryEnabled defaults to true when unset
func (c *Config) IsHistoryEnabled() bool {
	return c.HistoryEnabled == nil || *c.HistoryEnabled
}

// ResolveLogFile returns the configured log file or the default one
func (c *Config) ResolveLogFile() string {
	if c.LogFile != "" {
		return expandHome(c.LogFile)
	}
	return LogFile
}

// ResolveDatabasePath returns the configured database path or the default one
func (c *Config) ResolveDatabasePath() string {
	if c.DatabasePath != "" {
		return expandHome(c.DatabasePath)
	}
	return DatabasePath
}

// ResolveKeybindsPath returns the configured keybinds file or the default one
func (c *Config) ResolveKeybindsPath() string {
	if c.KeybindsPath != "" {
		return expandHome(c.KeybindsPath)
	}
	return KeybindsFile
}

// expandHome expands a leading ~/ to the home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}

// LocalConfigPath returns ./foodboard.yaml (or another supported extension)
// when one exists in the working directory
func LocalConfigPath() string {
	for _, name := range []string{"foodboard.yaml", "foodboard.yml", "foodboard.json", "foodboard.jsonc", "foodboard.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
