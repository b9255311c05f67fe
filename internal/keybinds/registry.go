package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// multiKeyState tracks multi-key sequences (like 'gg' in vim)
	multiKeyState map[Context]string
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context]map[string]Action),
		multiKeyState: make(map[Context]string),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes every key bound to action in context
func (r *Registry) Unbind(context Context, action Action) {
	for key, act := range r.bindings[context] {
		if act == action {
			delete(r.bindings[context], key)
		}
	}
}

// Match attempts to match a key to an action in the given context
// Returns the action and whether a match was found
// Contexts are checked in priority order: specific context -> global
func (r *Registry) Match(context Context, key string) (Action, bool) {
	// First check for exact match in specific context
	if contextBindings, ok := r.bindings[context]; ok {
		if action, ok := contextBindings[key]; ok {
			return action, true
		}
	}

	// Then check global context
	if globalBindings, ok := r.bindings[ContextGlobal]; ok {
		if action, ok := globalBindings[key]; ok {
			return action, true
		}
	}

	return "", false
}

// MatchMultiKey handles multi-key sequences like 'gg' for go-to-top
// Returns the action, whether it's a complete match, and whether it's a partial match
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	// Check if we have a pending multi-key state
	if prevKey, hasPending := r.multiKeyState[context]; hasPending {
		sequence := prevKey + key
		delete(r.multiKeyState, context)

		if action, ok := r.Match(context, sequence); ok {
			return action, true, false
		}
		return "", false, false
	}

	// A key starts a sequence when some binding in the context extends it
	if r.isSequencePrefix(context, key) {
		r.multiKeyState[context] = key
		return "", false, true
	}

	action, ok := r.Match(context, key)
	return action, ok, false
}

func (r *Registry) isSequencePrefix(context Context, key string) bool {
	if len(key) != 1 {
		return false
	}
	for bound := range r.bindings[context] {
		if isSequence(bound) && strings.HasPrefix(bound, key) {
			return true
		}
	}
	return false
}

// namedKeys are multi-character key names, not key sequences
var namedKeys = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"enter": true, "esc": true, "tab": true, "space": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"backspace": true, "delete": true, "insert": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// isSequence reports whether key is typed as several keys in a row ("gg")
func isSequence(key string) bool {
	return len(key) > 1 && !strings.Contains(key, "+") && !namedKeys[key]
}

// ClearMultiKeyState clears any pending multi-key state for a context
func (r *Registry) ClearMultiKeyState(context Context) {
	delete(r.multiKeyState, context)
}

// GetBinding returns the key(s) bound to an action in a context, sorted
func (r *Registry) GetBinding(context Context, action Action) []string {
	var keys []string

	if contextBindings, ok := r.bindings[context]; ok {
		for key, act := range contextBindings {
			if act == action {
				keys = append(keys, key)
			}
		}
	}

	// If not found, check global
	if len(keys) == 0 {
		if globalBindings, ok := r.bindings[ContextGlobal]; ok {
			for key, act := range globalBindings {
				if act == action {
					keys = append(keys, key)
				}
			}
		}
	}

	sort.Strings(keys)
	return keys
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, ", ")
}

// ListBindings returns the bindings of a context (without the global ones),
// sorted by action then key
func (r *Registry) ListBindings(context Context) []Binding {
	var bindings []Binding

	for key, action := range r.bindings[context] {
		bindings = append(bindings, Binding{
			Key:     key,
			Action:  action,
			Context: context,
		})
	}

	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Action != bindings[j].Action {
			return bindings[i].Action < bindings[j].Action
		}
		return bindings[i].Key < bindings[j].Key
	})
	return bindings
}

// Actions returns the distinct actions bound in a context, sorted
func (r *Registry) Actions(context Context) []Action {
	seen := make(map[Action]bool)
	var actions []Action
	for _, b := range r.ListBindings(context) {
		if !seen[b.Action] {
			seen[b.Action] = true
			actions = append(actions, b.Action)
		}
	}
	return actions
}

// HasBinding checks if a key is bound in a context
func (r *Registry) HasBinding(context Context, key string) bool {
	_, ok := r.Match(context, key)
	return ok
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()

	for context, contextBindings := range r.bindings {
		for key, action := range contextBindings {
			clone.Register(context, key, action)
		}
	}

	return clone
}

// Validate checks that every bound key and action is well formed
func (r *Registry) Validate() error {
	for context, contextBindings := range r.bindings {
		for key, action := range contextBindings {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("context '%s': %w", context, err)
			}
			if err := ValidateAction(string(action)); err != nil {
				return fmt.Errorf("context '%s', key '%s': %w", context, key, err)
			}
		}
	}
	return nil
}
