// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

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

	"github.com/clefworks/partitura/internal/catalog/author"
	"github.com/clefworks/partitura/internal/catalog/book"
	"github.com/clefworks/partitura/internal/catalog/category"
	"github.com/clefworks/partitura/internal/catalog/composer"
	"github.com/clefworks/partitura/internal/platform/config"
	"github.com/clefworks/partitura/internal/platform/constants"
	"github.com/clefworks/partitura/internal/platform/middleware"
	"github.com/clefworks/partitura/internal/pricing"
	"github.com/clefworks/partitura/internal/royalty"
	"github.com/clefworks/partitura/internal/sales"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Author manages catalog authors.
	Author *author.Handler

	// Composer manages composers and their per-book royalty works.
	Composer *composer.Handler

	// Category manages the two-level book classification.
	Category *category.Handler

	// Book manages the published catalog.
	Book *book.Handler

	// Pricing serves the price ledger and batch mutations.
	Pricing *pricing.Handler

	// Sales serves customers, orders, and the daily sale ledger.
	Sales *sales.Handler

	// Royalty serves settlement milestones and threshold detection.
	Royalty *royalty.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/authors", h.Author.Routes())
		api.Mount("/composers", h.Composer.Routes())
		api.Mount("/works", h.Composer.WorkRoutes())
		api.Mount("/categories", h.Category.Routes())

		// Book sub-resources nest under /{bookID} so they share the same
		// parameter namespace as the book endpoints themselves.
		api.Route("/books", func(books chi.Router) {
			h.Book.RegisterRoutes(books)
			books.Mount("/{bookID}/works", h.Composer.BookWorkRoutes())
			books.Mount("/{bookID}/price", h.Pricing.BookPriceRoutes())
			books.Mount("/{bookID}/sales", h.Sales.BookSalesRoutes())
		})

		api.Mount("/pricing", h.Pricing.Routes())
		api.Mount("/customers", h.Sales.CustomerRoutes())
		api.Mount("/orders", h.Sales.OrderRoutes())
		api.Mount("/settlements", h.Royalty.Routes())
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
