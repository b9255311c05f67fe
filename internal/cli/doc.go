// Package cli implements the scriptable commands (list, add, update,
// delete, history, mock) on top of the same controller the TUI uses.
//
// NewApp wires configuration, logging, the HTTP gateway and the activity
// history once per invocation. Output is json, yaml or text; text mode
// renders tables with lipgloss.
package cli
