// Package config loads the settings of both binaries once at startup.
//
// Every setting is a command-line flag whose default comes from an
// environment variable, so `GITHUB_TOKEN=... server` and
// `server --github-token ...` are equivalent. The loaded values are plain
// structs handed to constructors by value; nothing here is global.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

const (
	DefaultGitHubURL = "https://api.github.com"
	DefaultProxyPort = 8000
	DefaultWebPort   = 8080
	DefaultProxyURL  = "http://localhost:8000"
	DefaultPerPage   = 10
	DefaultTimeout   = 10 * time.Second
)

// Upstream describes how to reach the GitHub REST API.
type Upstream struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Proxy is the configuration of cmd/server.
type Proxy struct {
	Port     int
	LogLevel slog.Level
	GitHub   Upstream
}

// Web is the configuration of cmd/web.
type Web struct {
	Port     int
	LogLevel slog.Level
	ProxyURL string
	PerPage  int
	Timeout  time.Duration
}

// LoadProxy parses args (without the program name) on top of the
// environment. pflag.ErrHelp is returned as-is when -h/--help is given.
func LoadProxy(args []string) (Proxy, error) {
	var cfg Proxy

	port, err := envInt("PORT", DefaultProxyPort)
	if err != nil {
		return cfg, err
	}
	timeout, err := envDuration("GITHUB_TIMEOUT", DefaultTimeout)
	if err != nil {
		return cfg, err
	}

	var level string
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.IntVar(&cfg.Port, "port", port, "port to listen on (env PORT)")
	flagSet.StringVar(&cfg.GitHub.BaseURL, "github-url", getEnvOrDefault("GITHUB_URL", DefaultGitHubURL), "GitHub REST API base URL (env GITHUB_URL)")
	flagSet.StringVar(&cfg.GitHub.Token, "github-token", os.Getenv("GITHUB_TOKEN"), "GitHub personal access token (env GITHUB_TOKEN)")
	flagSet.DurationVar(&cfg.GitHub.Timeout, "github-timeout", timeout, "timeout for each GitHub request (env GITHUB_TIMEOUT)")
	flagSet.StringVar(&level, "log-level", getEnvOrDefault("LOG_LEVEL", "info"), "debug, info, warn or error (env LOG_LEVEL)")

	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.LogLevel, err = parseLevel(level); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate reports the first setting that would stop the proxy from working.
func (c Proxy) Validate() error {
	if err := validatePort(c.Port); err != nil {
		return err
	}
	if c.GitHub.Token == "" {
		return errors.New("config: GitHub token is required (set GITHUB_TOKEN or --github-token)")
	}
	if err := validateURL("github-url", c.GitHub.BaseURL); err != nil {
		return err
	}
	if c.GitHub.Timeout <= 0 {
		return fmt.Errorf("config: github-timeout must be positive, got %s", c.GitHub.Timeout)
	}
	return nil
}

// LoadWeb parses args (without the program name) on top of the environment.
func LoadWeb(args []string) (Web, error) {
	var cfg Web

	port, err := envInt("PORT", DefaultWebPort)
	if err != nil {
		return cfg, err
	}
	perPage, err := envInt("PER_PAGE", DefaultPerPage)
	if err != nil {
		return cfg, err
	}
	timeout, err := envDuration("PROXY_TIMEOUT", DefaultTimeout)
	if err != nil {
		return cfg, err
	}

	var level string
	flagSet := pflag.NewFlagSet("web", pflag.ContinueOnError)
	flagSet.IntVar(&cfg.Port, "port", port, "port to listen on (env PORT)")
	flagSet.StringVar(&cfg.ProxyURL, "proxy-url", getEnvOrDefault("PROXY_URL", DefaultProxyURL), "base URL of the proxy service (env PROXY_URL)")
	flagSet.IntVar(&cfg.PerPage, "per-page", perPage, "issues per page, 1-100 (env PER_PAGE)")
	flagSet.DurationVar(&cfg.Timeout, "proxy-timeout", timeout, "timeout for each proxy request (env PROXY_TIMEOUT)")
	flagSet.StringVar(&level, "log-level", getEnvOrDefault("LOG_LEVEL", "info"), "debug, info, warn or error (env LOG_LEVEL)")

	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.LogLevel, err = parseLevel(level); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate reports the first setting that would stop the views from working.
func (c Web) Validate() error {
	if err := validatePort(c.Port); err != nil {
		return err
	}
	if err := validateURL("proxy-url", c.ProxyURL); err != nil {
		return err
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("config: per-page must be between 1 and 100, got %d", c.PerPage)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: proxy-timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("config: port must be between 1 and 65535, got %d", port)
	}
	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: invalid %s %q: %w", name, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("config: %s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("config: invalid log level %q: %w", s, err)
	}
	return level, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", key, v, err)
	}
	return d, nil
}
