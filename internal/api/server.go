// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/review"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Settings is the slice of configuration the server reads.
type Settings interface {
	middleware.AppConfig
	Port() string
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup and token exchange.
	Auth *auth.Handler

	// Users handles administration of accounts and the caller's own profile.
	Users *account.Handler

	Categories *reference.Handler
	Genres     *reference.Handler
	Titles     *title.Handler

	// Reviews serves reviews and their comments under a title.
	Reviews *review.Handler
}

// Identity resolves bearer tokens into actors.
type Identity struct {
	Verifier middleware.TokenVerifier
	Loader   middleware.ActorLoader
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg Settings, log *slog.Logger, identity Identity, h Handlers) *Server {
	r := NewRouter(context, cfg, log, identity, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port(),
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree served by [Server].
func NewRouter(context context.Context, cfg Settings, log *slog.Logger, identity Identity, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.Authenticate(identity.Verifier, identity.Loader))

	// # Infrastructure Endpoints
	// Unauthenticated health checks for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Users.Routes())
		api.Mount("/categories", h.Categories.Routes())
		api.Mount("/genres", h.Genres.Routes())

		api.Route("/titles", func(titles chi.Router) {
			h.Titles.RegisterRoutes(titles)
			titles.Route("/{"+title.ParamTitleID+"}/reviews", h.Reviews.RegisterRoutes)
		})
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
