package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/studiowebux/foodboard/internal/config"
	"github.com/studiowebux/foodboard/internal/dashboard"
	"github.com/studiowebux/foodboard/internal/gateway"
	"github.com/studiowebux/foodboard/internal/history"
	"github.com/studiowebux/foodboard/internal/keybinds"
	"github.com/studiowebux/foodboard/internal/logging"
)

// AppOptions are the command line overrides shared by every command
type AppOptions struct {
	ConfigPath string // explicit --config, must exist when set
	BaseURL    string // --base-url
	Verbose    bool   // log at debug level to stderr as well
}

// App holds the wired components for one invocation
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Gateway    *gateway.HTTPGateway
	Activity   *history.Manager // nil when history is disabled
	Controller *dashboard.Controller

	logCloser io.Closer
}

// NewApp loads the configuration and builds the logger, gateway, activity
// history and controller. config.Initialize must have been called.
func NewApp(opts AppOptions) (*App, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --base-url: %w", err)
		}
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, logCloser, err := logging.New(logging.Options{
		Level:   level,
		File:    cfg.ResolveLogFile(),
		Console: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		logCloser: logCloser,
	}

	app.Gateway, err = gateway.New(gateway.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout(),
		TLS:     cfg.TLS,
		Logger:  logger,
	})
	if err != nil {
		app.Close()
		return nil, err
	}

	ctrlOpts := []dashboard.Option{dashboard.WithLogger(logger)}
	if cfg.IsHistoryEnabled() {
		app.Activity, err = history.NewManager(cfg.ResolveDatabasePath(), app.Gateway.BaseURL(), logger)
		if err != nil {
			// The dashboard works without the activity log
			logger.Warn().Err(err).Msg("activity history disabled")
			app.Activity = nil
		} else {
			ctrlOpts = append(ctrlOpts, dashboard.WithRecorder(app.Activity))
		}
	}

	app.Controller = dashboard.New(app.Gateway, ctrlOpts...)

	logger.Debug().
		Str("base_url", app.Gateway.BaseURL()).
		Bool("history", app.Activity != nil).
		Msg("foodboard ready")

	return app, nil
}

// loadConfig resolves the config file: the explicit path, then a
// foodboard.* file in the working directory, then ~/.foodboard/config.yaml
func loadConfig(explicit string) (*config.Config, error) {
	if explicit != "" {
		cfg, err := config.Load(explicit)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	path := config.LocalConfigPath()
	if path == "" {
		path = config.ConfigFile
	}
	return config.LoadOrDefault(path)
}

// Keybinds loads the user's key bindings, falling back to the defaults
// when the file is invalid. Problems are logged, never fatal.
func (a *App) Keybinds() *keybinds.Registry {
	path := a.Config.ResolveKeybindsPath()

	registry, err := keybinds.LoadOrDefault(path)
	if err != nil {
		a.Logger.Warn().Err(err).Str("path", path).Msg("invalid keybinds, using defaults")
		return keybinds.NewDefaultRegistry()
	}

	result := keybinds.NewValidator().ValidateRegistry(registry)
	for _, warning := range result.Warnings {
		a.Logger.Warn().Str("context", string(warning.Context)).Str("key", warning.Key).Msg(warning.Message)
	}

	return registry
}

// Close releases the history database and the log file
func (a *App) Close() error {
	var errs []error
	if a.Activity != nil {
		errs = append(errs, a.Activity.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}

// IsInteractive checks if stdin is a terminal (not piped)
func IsInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
