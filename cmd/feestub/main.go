// Command feestub runs the local development stub of the fee backend.
//
// Environment variables:
//
//	FEESTUB_ADDR:       listen address (default :5000)
//	FEESTUB_DB_PATH:    sqlite database path (default ./data/fees.db)
//	FEESTUB_TOKEN_KEY:  HS256 secret; when set, routes require a bearer token
//	FEESTUB_SEED:       "1" seeds a demo school on an empty database
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/krushnaz/teachove-fees/internal/auth"
	"github.com/krushnaz/teachove-fees/internal/server"
	"github.com/krushnaz/teachove-fees/internal/storage/sqlite"
	"github.com/krushnaz/teachove-fees/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using environment")
	}
	logging.Setup()

	addr := getEnv("FEESTUB_ADDR", ":5000")
	dbPath := getEnv("FEESTUB_DB_PATH", "./data/fees.db")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	if os.Getenv("FEESTUB_SEED") == "1" {
		if err := server.Seed(context.Background(), store); err != nil {
			slog.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("Seeded demo school", "school_id", server.DemoSchoolID)
	}

	var tokens *auth.TokenManager
	if key := os.Getenv("FEESTUB_TOKEN_KEY"); key != "" {
		tokens = auth.NewTokenManager(key, 24*time.Hour)
		devToken, err := tokens.Generate(server.DemoSchoolID)
		if err != nil {
			slog.Error("Failed to generate dev token", "error", err)
			os.Exit(1)
		}
		slog.Info("Bearer auth enabled", "dev_token", devToken)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(store, tokens).Router(),
	}

	go func() {
		slog.Info("Stub fee API starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
