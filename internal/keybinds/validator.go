package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]bool
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]bool{
			"ctrl+c": true, // Force quit should always work
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkReservedKeys(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// ValidateConfig validates a configuration before applying it
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkConfigEntries(config, result)
	if result.HasErrors() {
		return result
	}

	// Validate the merged registry
	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "invalid",
			Message: err.Error(),
		})
		return result
	}

	merged := v.ValidateRegistry(registry)
	result.Errors = append(result.Errors, merged.Errors...)
	result.Warnings = append(result.Warnings, merged.Warnings...)
	return result
}

// checkConfigEntries reports unknown actions, malformed keys and keys given
// to two actions of the same section
func (v *Validator) checkConfigEntries(config *Config, result *ValidationResult) {
	for _, context := range AllContexts {
		section := config.sections()[context]

		actions := make([]string, 0, len(section))
		for action := range section {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		owner := make(map[string]string)
		for _, action := range actions {
			if err := ValidateAction(action); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Message: err.Error(),
				})
				continue
			}

			for _, key := range splitKeys(section[action]) {
				if err := ValidateKey(key); err != nil {
					result.Errors = append(result.Errors, ValidationError{
						Type:    "invalid",
						Context: context,
						Key:     key,
						Message: err.Error(),
					})
					continue
				}
				if prev, taken := owner[key]; taken {
					result.Errors = append(result.Errors, ValidationError{
						Type:    "conflict",
						Context: context,
						Key:     key,
						Message: fmt.Sprintf("bound to both %s and %s", prev, action),
					})
					continue
				}
				owner[key] = action
			}
		}
	}
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key, action := range bindings {
			if v.reservedKeys[key] && action != ActionQuitForce {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: "reserved key rebound (may cause issues)",
				})
			}
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	globalBindings := registry.bindings[ContextGlobal]
	if globalBindings == nil {
		return
	}

	for context, bindings := range registry.bindings {
		if context == ContextGlobal {
			continue
		}

		for key, action := range bindings {
			if globalAction, hasGlobal := globalBindings[key]; hasGlobal && action != globalAction {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
				})
			}
		}
	}
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(config *Config) []string {
	result := NewValidator().ValidateConfig(config)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}

	return conflicts
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	for _, mod := range []string{"ctrl+", "alt+", "shift+", "super+"} {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}

	if strings.ContainsAny(key, " \t") {
		return fmt.Errorf("key cannot contain whitespace: %q", key)
	}

	return nil
}

// ValidateAction checks if an action string is valid
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action: %s", actionStr)
	}
	return nil
}
