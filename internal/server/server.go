// Package server sets up the HTTP servers, routers and route definitions
// for both binaries.
//
// SERVER ARCHITECTURE:
// This package is the wiring layer. It connects handlers, middleware and
// routes, and decides how a server starts and stops. Keeping it out of
// main.go means tests can build the real router with a fake upstream and
// drive it through httptest, without running a binary.
//
// DEPENDENCY CHAIN:
//
//	proxy: config.Proxy → github.Client → service.IssueService → handler.GitHubHandler
//	web:   config.Web   → apiclient.Client → web.Handler
//
// main builds the upstream client and passes it in. This is the
// composition root: every dependency is assembled here or in main, never
// inside a handler.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/issue-dashboard/internal/config"
	"github.com/sakif/issue-dashboard/internal/handler"
	"github.com/sakif/issue-dashboard/internal/middleware"
	"github.com/sakif/issue-dashboard/internal/service"
	"github.com/sakif/issue-dashboard/internal/web"
)

const shutdownTimeout = 30 * time.Second

// Server is one HTTP listener and its router.
type Server struct {
	name   string
	port   int
	router *chi.Mux
	logger *slog.Logger
}

// NewProxy builds the JSON proxy.
//
// ROUTES:
//
//	GET /account
//	GET /issues/{username}
//	GET /issues/{username}/{repository}/{issueNumber}
//	GET /healthz
func NewProxy(cfg config.Proxy, upstream service.Upstream, logger *slog.Logger) *Server {
	s := newServer("proxy", cfg.Port, logger)

	issueService := service.NewIssueService(upstream, logger)
	h := handler.NewGitHubHandler(issueService, logger)

	s.router.Get("/account", h.HandleAccount)
	s.router.Get("/issues/{username}", h.HandleAssignedIssues)
	s.router.Get("/issues/{username}/{repository}/{issueNumber}", h.HandleIssueDetail)
	s.router.Get("/healthz", h.HandleHealth)

	return s
}

// NewWeb builds the HTML front end.
//
// ROUTES:
//
//	GET /
//	GET /issue/{username}/{repository}/{id}
//	GET /static/*
func NewWeb(cfg config.Web, api web.API, logger *slog.Logger) (*Server, error) {
	s := newServer("web", cfg.Port, logger)

	h, err := web.NewHandler(api, cfg.PerPage, logger)
	if err != nil {
		return nil, fmt.Errorf("creating web handler: %w", err)
	}

	s.router.Handle("/static/*", web.Static())
	s.router.Get("/", h.HandleAccount)
	s.router.Get("/issue/{username}/{repository}/{id}", h.HandleIssue)

	return s, nil
}

// newServer installs the middleware shared by both binaries.
//
// MIDDLEWARE ORDER MATTERS:
// Middleware runs in the order it is added:
//  1. RequestID: assigns an ID to each request (or keeps the caller's)
//  2. RealIP: takes the client IP from X-Forwarded-For / X-Real-IP
//  3. Logger: logs each request, including the ID from step 1
//  4. Recoverer: turns a panic into a 500; it sits inside the logger so
//     the recovered request is still logged
func newServer(name string, port int, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)

	return &Server{
		name:   name,
		port:   port,
		router: r,
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and blocks until the server stops.
//
// GRACEFUL SHUTDOWN:
//  1. SIGINT (Ctrl+C) or SIGTERM arrives
//  2. the server stops accepting new connections
//  3. in-flight requests get shutdownTimeout to finish
//
// A listen failure (port already in use) is returned immediately.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Buffered so signal.Notify never blocks on delivery.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	// ListenAndServe blocks, so it runs in its own goroutine and reports
	// back here.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("server", s.name),
			slog.Int("port", s.port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully", slog.String("server", s.name))
	}

	return nil
}
