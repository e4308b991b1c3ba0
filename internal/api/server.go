// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

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

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/access"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comic"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comment"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/publish"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/ledger"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/config"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/middleware"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/storage"
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

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Comic serves the catalogue.
	Comic *comic.Handler

	// Access lists tokens and syncs holdings.
	Access *access.Handler

	// Publish mints chapters and collectibles.
	Publish *publish.Handler

	// Comment serves comments and votes.
	Comment *comment.Handler

	// Content serves the content-addressed store.
	Content *storage.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.AuthVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {

		// Publishing runs the full ledger retry loop, so it gets no request
		// timeout and a write deadline long enough to report the outcome.
		api.Group(func(minting chi.Router) {
			minting.Use(middleware.WriteDeadline(PublishWriteDeadline(cfg)))
			minting.Mount("/token-series", h.Publish.SeriesRoutes())
			minting.Mount("/chapters", h.Publish.ChapterRoutes())
		})

		api.Group(func(standard chi.Router) {
			standard.Use(chimw.Timeout(constants.GlobalRequestTimeout))
			standard.Mount("/mint-attempts", h.Publish.AttemptRoutes())
			standard.Mount("/comics", h.Comic.Routes())
			standard.Mount("/tokens", h.Access.TokenRoutes())
			standard.Mount("/comments", h.Comment.Routes())
			standard.Mount("/content", h.Content.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// PublishWriteDeadline covers a publish whose every ledger call runs to the
// client timeout, plus the upload and the local commit around it.
func PublishWriteDeadline(cfg *config.Config) time.Duration {
	retry := ledger.Retry{
		Attempts: cfg.Ledger.RetryAttempts,
		MinDelay: cfg.Ledger.RetryMinDelay,
		MaxDelay: cfg.Ledger.RetryMaxDelay,
	}
	return retry.MaxDuration(ledger.CallTimeout) + constants.GlobalRequestTimeout
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
