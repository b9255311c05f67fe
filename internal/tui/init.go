package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/studiowebux/foodboard/internal/config"
	"github.com/studiowebux/foodboard/internal/dashboard"
	"github.com/studiowebux/foodboard/internal/keybinds"
)

// Options wires the TUI to its collaborators
type Options struct {
	Controller     *dashboard.Controller
	Activity       ActivityLog // nil disables the activity modal
	Keybinds       *keybinds.Registry
	Logger         zerolog.Logger
	Currency       string
	Timeout        time.Duration
	BaseURL        string
	ActivityLimit  int
	MessageTimeout time.Duration // 0 keeps messages until replaced
}

// New creates a new TUI model
func New(opts Options) (*Model, error) {
	if opts.Controller == nil {
		return nil, fmt.Errorf("tui: controller is required")
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}
	if opts.Currency == "" {
		opts.Currency = config.DefaultCurrency
	}
	if opts.ActivityLimit <= 0 {
		opts.ActivityLimit = defaultActivityLimit
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styleTitle),
	)

	m := &Model{
		ctrl:           opts.Controller,
		activity:       opts.Activity,
		keybinds:       opts.Keybinds,
		logger:         opts.Logger.With().Str("component", "tui").Logger(),
		currency:       opts.Currency,
		timeout:        opts.Timeout,
		baseURL:        opts.BaseURL,
		activityLimit:  opts.ActivityLimit,
		messageTimeout: opts.MessageTimeout,
		mode:           ModeNormal,
		spinner:        sp,
		modalView:      viewport.New(80, 20), // For scrollable modals
	}

	return m, nil
}

// Run starts the TUI and blocks until the user quits
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}

	// Note: Mouse is disabled by default in bubbletea
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
