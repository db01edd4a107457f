// Package main is the entry point for the chat server.
//
// main() stays minimal — its job is to:
// 1. Read configuration (a .env file if present, then environment variables)
// 2. Create dependencies (logger, sentiment backend)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, etc.).
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/mete1923/sentiment-chat/internal/config"
	"github.com/mete1923/sentiment-chat/internal/sentiment"
	"github.com/mete1923/sentiment-chat/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// A missing .env is fine — production sets real environment variables.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Ensure the data directory exists (like `mkdir -p`).
	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// Select the sentiment backend once, at process start. Everything past
	// this point only sees the sentiment.Analyzer interface.
	var analyzer sentiment.Analyzer
	switch cfg.SentimentBackend {
	case config.BackendSpace:
		analyzer = sentiment.NewSpaceAnalyzer(cfg.SpaceURL, logger)
	case config.BackendHuggingFace:
		analyzer = sentiment.NewHuggingFaceAnalyzer(cfg.HFModelID, cfg.HFAPIToken, logger)
	case config.BackendGradio:
		analyzer = sentiment.NewGradioAnalyzer(cfg.GradioURL, logger)
	case config.BackendScript:
		analyzer = sentiment.NewScriptAnalyzer(cfg.ScriptPath, logger)
	}
	logger.Info("sentiment backend selected", slog.String("backend", cfg.SentimentBackend))

	srv, err := server.New(server.Config{
		Port:   cfg.Port,
		DBPath: cfg.DBPath,
	}, analyzer, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
