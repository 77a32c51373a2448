// Command server is the proxy in front of the GitHub REST API. It serves
// the signed-in user, their open assigned issues and single issue details
// as JSON.
//
//	GITHUB_TOKEN=... server --port 8000
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/sakif/issue-dashboard/internal/config"
	"github.com/sakif/issue-dashboard/internal/github"
	"github.com/sakif/issue-dashboard/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

// run does the work of main and returns errors instead of exiting, so
// deferred cleanup always runs.
func run() error {
	// === 1. READ CONFIGURATION ===
	// Flags override environment variables (PORT, GITHUB_TOKEN, ...).
	// --help prints usage and pflag.ErrHelp comes back; that is not a failure.
	cfg, err := config.LoadProxy(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// === 2. SET UP LOGGING ===
	// Text output for humans; the level comes from --log-level / LOG_LEVEL.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// === 3. CREATE THE GITHUB CLIENT ===
	// The only component that talks to api.github.com. It carries the
	// token, so it is built once here and shared by every request.
	client, err := github.NewClient(cfg.GitHub, logger)
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	logger.Info("proxying GitHub API",
		slog.String("github_url", cfg.GitHub.BaseURL),
		slog.Duration("timeout", cfg.GitHub.Timeout),
	)

	// === 4. CREATE AND START THE SERVER ===
	// Start blocks until SIGINT or SIGTERM.
	return server.NewProxy(cfg, client, logger).Start()
}
