package mock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads a mock configuration from a file. A bare list of foods
// (json-server's db.json style {"foods": [...]}) is accepted as well.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// validateConfig validates the mock configuration
func validateConfig(config *Config) error {
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d out of range", config.Port)
	}
	if config.Delay < 0 {
		return fmt.Errorf("delay must not be negative")
	}

	seen := make(map[string]bool, len(config.Foods))
	for i, f := range config.Foods {
		if f.ID == "" {
			continue
		}
		if seen[f.ID] {
			return fmt.Errorf("food %d: duplicate id %q", i, f.ID)
		}
		seen[f.ID] = true
	}

	return nil
}
