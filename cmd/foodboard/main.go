package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/studiowebux/foodboard/internal/cli"
	"github.com/studiowebux/foodboard/internal/config"
	"github.com/studiowebux/foodboard/internal/logging"
	"github.com/studiowebux/foodboard/internal/tui"
	"github.com/studiowebux/foodboard/internal/types"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foodboard",
	Short: "Foodboard - food catalog dashboard",
	Long: `Foodboard manages the food catalog of a REST backend exposing /foods.

Run without arguments to start the interactive dashboard, or use the
subcommands for scripting.

Examples:
  foodboard                                   # Start the dashboard
  foodboard list -o json                      # Print the catalog as JSON
  foodboard add --name Cake --image http://img/cake.png --price 12 --description Chocolate
  foodboard update 3 --price 14               # Change only the price
  foodboard delete 3 --yes                    # Delete without confirmation
  foodboard mock --seed foods.yaml            # Run a local backend`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return runTUI(app)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.List(cmd.Context(), cmd.OutOrStdout(), flagOutput)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a food (all fields required)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.Add(cmd.Context(), cmd.OutOrStdout(), foodInput(), flagOutput)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change the given fields of a food",
	Long: `Change the given fields of a food. Omitted fields keep their value.

Without an id, a picker lists the catalog (terminal only).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		id, err := resolveID(cmd.Context(), app, args, "Select the food to update")
		if err != nil {
			return err
		}
		return app.Update(cmd.Context(), cmd.OutOrStdout(), id, foodInput(), flagOutput)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a food",
	Long: `Delete a food. Asks for confirmation unless --yes is given.

Without an id, a picker lists the catalog (terminal only).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		id, err := resolveID(cmd.Context(), app, args, "Select the food to delete")
		if err != nil {
			return err
		}

		opts := cli.DeleteOptions{Yes: flagYes}
		if cli.IsInteractive() {
			opts.Stdin = cmd.InOrStdin()
		}
		return app.Delete(cmd.Context(), cmd.OutOrStdout(), id, opts)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent catalog activity for the current backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if flagClear {
			return app.ClearHistory(cmd.OutOrStdout())
		}
		if flagStats {
			return app.HistoryStats(cmd.OutOrStdout(), flagOutput)
		}
		return app.History(cmd.OutOrStdout(), flagLimit, flagOutput)
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run an in-memory /foods backend",
	Long: `Run an in-memory /foods backend compatible with the dashboard.

The seed file is YAML or JSON: a "foods" list plus optional host, port
and delay (ms).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closer, err := logging.New(logging.Options{Level: "info", Console: true})
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.RunMock(ctx, cmd.OutOrStdout(), cli.MockOptions{
			Host:     flagMockHost,
			Port:     flagMockPort,
			SeedFile: flagMockSeed,
			Delay:    flagMockDelay,
		}, logger)
	},
}

// Persistent flags
var (
	flagConfig  string
	flagBaseURL string
	flagVerbose bool
)

// Command flags
var (
	flagOutput      string
	flagName        string
	flagImage       string
	flagPrice       float64
	flagDescription string
	flagYes         bool
	flagLimit       int
	flagClear       bool
	flagStats       bool
)

// Flags for mock
var (
	flagMockHost  string
	flagMockPort  int
	flagMockSeed  string
	flagMockDelay int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (yaml, json, jsonc or toml)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	for _, cmd := range []*cobra.Command{listCmd, addCmd, updateCmd, historyCmd} {
		cmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")
	}

	for _, cmd := range []*cobra.Command{addCmd, updateCmd} {
		cmd.Flags().StringVar(&flagName, "name", "", "Food name")
		cmd.Flags().StringVar(&flagImage, "image", "", "Image URL")
		cmd.Flags().Float64Var(&flagPrice, "price", 0, "Price")
		cmd.Flags().StringVar(&flagDescription, "description", "", "Description")
	}

	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of entries (0 for all)")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-operation totals instead of entries")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the activity of the current backend")

	mockCmd.Flags().StringVar(&flagMockHost, "host", "", "Listen host (default localhost)")
	mockCmd.Flags().IntVarP(&flagMockPort, "port", "p", 0, "Listen port (default 3333)")
	mockCmd.Flags().StringVarP(&flagMockSeed, "seed", "s", "", "Seed file with foods (yaml/json)")
	mockCmd.Flags().IntVar(&flagMockDelay, "delay", 0, "Artificial response delay in ms")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mockCmd)
}

// newApp initializes ~/.foodboard and wires the components
func newApp() (*cli.App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	return cli.NewApp(cli.AppOptions{
		ConfigPath: flagConfig,
		BaseURL:    flagBaseURL,
		Verbose:    flagVerbose,
	})
}

// runTUI starts the interactive dashboard
func runTUI(app *cli.App) error {
	opts := tui.Options{
		Controller: app.Controller,
		Keybinds:   app.Keybinds(),
		Logger:     app.Logger,
		Currency:   app.Config.Currency,
		Timeout:    app.Config.RequestTimeout(),
		BaseURL:    app.Gateway.BaseURL(),
	}
	if app.Activity != nil {
		opts.Activity = app.Activity
	}

	return tui.Run(opts)
}

// resolveID returns the id argument or asks the user to pick a food
func resolveID(ctx context.Context, app *cli.App, args []string, title string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return app.PickFood(ctx, title)
}

// foodInput collects the food flags, unset flags stay zero
func foodInput() types.FoodInput {
	return types.FoodInput{
		Name:        flagName,
		Image:       flagImage,
		Price:       flagPrice,
		Description: flagDescription,
	}
}
