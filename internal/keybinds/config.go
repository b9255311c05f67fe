package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma-separated list of keys, e.g.
// "new_food": "n,a". Listed actions replace the default keys of that action.
type Config struct {
	Version string            `json:"version,omitempty"`
	Global  map[string]string `json:"global,omitempty"`
	Normal  map[string]string `json:"normal,omitempty"`
	Form    map[string]string `json:"form,omitempty"`
	Confirm map[string]string `json:"confirm,omitempty"`
	Viewer  map[string]string `json:"viewer,omitempty"`
}

// sections maps config sections to contexts
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextNormal:  c.Normal,
		ContextForm:    c.Form,
		ContextConfirm: c.Confirm,
		ContextViewer:  c.Viewer,
	}
}

// LoadConfig loads keybinding configuration from a JSON file.
// Comments and trailing commas are allowed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// splitKeys parses "k1, k2" into its keys
func splitKeys(value string) []string {
	var keys []string
	for _, key := range strings.Split(value, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, config *Config) error {
	for context, section := range config.sections() {
		for actionStr, value := range section {
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("context '%s': %w", context, err)
			}
			keys := splitKeys(value)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("context '%s', action '%s': %w", context, actionStr, err)
				}
			}

			action := Action(actionStr)
			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}
	if _, err := os.Stat(configPath); err != nil {
		// No user config, defaults only
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}

	if result := NewValidator().ValidateConfig(config); result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds.json:\n%s", result.String())
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}
