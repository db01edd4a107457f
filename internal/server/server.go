// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where handlers,
// services, repositories and the sentiment analyzer are assembled:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Each layer only receives what it needs: services get repository interfaces
// (not the concrete sqlite.DB), handlers get services, and nothing below the
// handler layer knows HTTP exists.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mete1923/sentiment-chat/internal/auth"
	"github.com/mete1923/sentiment-chat/internal/handler"
	"github.com/mete1923/sentiment-chat/internal/middleware"
	sqliteRepo "github.com/mete1923/sentiment-chat/internal/repository/sqlite"
	"github.com/mete1923/sentiment-chat/internal/sentiment"
	"github.com/mete1923/sentiment-chat/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port   int
	DBPath string
}

// Server represents the HTTP server and all its dependencies. It owns the
// database connection and closes it during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a new Server with the given config and sentiment analyzer.
//
// The analyzer is injected rather than built here: main selects the concrete
// backend from configuration, and the rest of the system only ever sees the
// sentiment.Analyzer interface.
func New(cfg Config, analyzer sentiment.Analyzer, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(analyzer)

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID — assigns a unique ID to each request (for tracing)
// 2. RealIP — extracts the real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info and the request id
func (s *Server) setupRoutes(analyzer sentiment.Analyzer) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	passwords := auth.NewPasswordService()

	roomService := service.NewRoomService(s.db, passwords, s.logger)
	userService := service.NewUserService(s.db, s.logger)
	messageService := service.NewMessageService(s.db, s.db, s.db, analyzer, s.logger)

	roomHandler := handler.NewRoomHandler(roomService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	messageHandler := handler.NewMessageHandler(messageService, s.logger)

	// Static liveness probe, useful for deploy smoke checks.
	s.router.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"message":"backend API is working","timestamp":%q}`,
			time.Now().UTC().Format(time.RFC3339))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/messages", func(r chi.Router) {
			r.Post("/", messageHandler.HandleCreate)
			r.Get("/", messageHandler.HandleList)
			// /health must be registered before {id} would shadow it —
			// chi matches static segments first, but keeping it explicit
			// here avoids surprises if the routes are reordered.
			r.Get("/health", messageHandler.HandleHealth)
			r.Get("/{id}", messageHandler.HandleGetByID)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", roomHandler.HandleCreate)
			r.Post("/join", roomHandler.HandleJoin)
			r.Get("/", roomHandler.HandleList)
			r.Get("/{id}", roomHandler.HandleGetByID)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.HandleRegister)
			r.Get("/", userHandler.HandleList)
			r.Get("/{id}", userHandler.HandleGetByID)
		})
	})
}

// Start starts the HTTP server and handles graceful shutdown.
//
// Shutdown sequence on SIGINT/SIGTERM:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s budget)
// 3. Close the database connection (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second, // must outlast the slowest sentiment backend (30s)
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
