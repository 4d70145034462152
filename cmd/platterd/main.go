package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/five82/platter/internal/database"
	"github.com/five82/platter/internal/logging"
	"github.com/five82/platter/internal/restaurant"
	"github.com/five82/platter/internal/server"
	"github.com/five82/platter/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("PLATTER_LOG_LEVEL"), os.Stderr)

	port := envOr("PLATTER_PORT", "8080")
	dbPath := envOr("PLATTER_DB_PATH", "platter.db")

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", dbPath, "error", err)
		return 1
	}
	defer db.Close()

	restaurants := store.NewRestaurantStore(db)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if seedPath := os.Getenv("PLATTER_SEED_FILE"); seedPath != "" {
		added, err := seedFromFile(ctx, restaurants, seedPath)
		if err != nil {
			logger.Error("failed to seed database", "path", seedPath, "error", err)
			return 1
		}
		logger.Info("database seeded", "path", seedPath, "added", added)
	}
	if total, err := restaurants.Count(ctx); err != nil {
		logger.Warn("failed to count restaurants", "error", err)
	} else {
		logger.Info("restaurants loaded", "count", total)
	}

	srv := server.New(restaurants, server.Options{
		CORSOrigins: splitList(envOr("PLATTER_CORS_ORIGINS", "http://localhost:3000")),
		RateLimit:   envFloat(logger, "PLATTER_RATE_LIMIT", 50),
	}, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("platterd listening", "addr", "http://localhost:"+port, "db", dbPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return 1
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return 1
	}
	return 0
}

func seedFromFile(ctx context.Context, restaurants *store.RestaurantStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var items []restaurant.Restaurant
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}
	return restaurants.Seed(ctx, items)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envFloat(logger *slog.Logger, key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		logger.Warn("ignoring invalid setting", "key", key, "value", raw)
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
