// Command web serves the dashboard's HTML views. It reads everything from
// the proxy started by cmd/server and never talks to GitHub itself.
//
//	web --port 8080 --proxy-url http://localhost:8000
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/sakif/issue-dashboard/internal/apiclient"
	"github.com/sakif/issue-dashboard/internal/config"
	"github.com/sakif/issue-dashboard/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

// run does the work of main and returns errors instead of exiting.
func run() error {
	// === 1. READ CONFIGURATION ===
	cfg, err := config.LoadWeb(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// === 2. SET UP LOGGING ===
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// === 3. CREATE THE PROXY CLIENT ===
	// The views never call GitHub; everything goes through the proxy.
	api, err := apiclient.New(cfg, logger)
	if err != nil {
		return err
	}

	// === 4. CREATE AND START THE SERVER ===
	srv, err := server.NewWeb(cfg, api, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logger.Info("using proxy",
		slog.String("proxy_url", cfg.ProxyURL),
		slog.Int("per_page", cfg.PerPage),
	)

	return srv.Start()
}
