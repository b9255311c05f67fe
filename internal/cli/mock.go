package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/studiowebux/foodboard/internal/mock"
)

// MockOptions configures `foodboard mock`
type MockOptions struct {
	Host     string
	Port     int
	SeedFile string // yaml or json, optional
	Delay    int    // ms added to every response
}

// RunMock serves the mock backend until ctx is cancelled
func RunMock(ctx context.Context, w io.Writer, opts MockOptions, logger zerolog.Logger) error {
	cfg := &mock.Config{}
	if opts.SeedFile != "" {
		loaded, err := mock.LoadConfig(opts.SeedFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags win over the seed file
	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.Delay > 0 {
		cfg.Delay = opts.Delay
	}

	server := mock.NewServer(cfg, logger)
	if err := server.Start(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Mock backend listening on %s (%d foods)\n", server.GetAddress(), len(server.Foods()))
	fmt.Fprintln(w, "Press Ctrl+C to stop")

	<-ctx.Done()

	if err := server.Stop(); err != nil {
		return fmt.Errorf("failed to stop mock server: %w", err)
	}
	fmt.Fprintf(w, "Mock backend stopped (%d requests served)\n", len(server.GetLogs()))
	return nil
}
