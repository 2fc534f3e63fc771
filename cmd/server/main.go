package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/platesync/internal/server/handlers"
	"github.com/iudanet/platesync/internal/server/middleware"
	"github.com/iudanet/platesync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "platesync-server.db", "Path to SQLite database")
	jwtSecret := flag.String("jwt-secret", os.Getenv("PLATESYNC_JWT_SECRET"), "JWT signing secret (env: PLATESYNC_JWT_SECRET)")
	accessTTL := flag.Duration("access-ttl", 15*time.Minute, "Access token TTL")
	refreshTTL := flag.Duration("refresh-ttl", 7*24*time.Hour, "Refresh token TTL")
	rateLimit := flag.Int("rate-limit", 100, "Max requests per IP per rate-limit window")
	rateWindow := flag.Duration("rate-window", time.Minute, "Rate limit window")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *jwtSecret == "" {
		logger.Error("JWT secret is required, set --jwt-secret or PLATESYNC_JWT_SECRET")
		os.Exit(1)
	}

	if err := run(logger, *addr, *dbPath, *jwtSecret, *accessTTL, *refreshTTL, *rateLimit, *rateWindow); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(
	logger *slog.Logger,
	addr, dbPath, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
	rateLimit int,
	rateWindow time.Duration,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(jwtSecret),
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig)
	mealsHandler := handlers.NewMealsHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	authMw := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.Handle("POST /api/v1/meals", authMw(http.HandlerFunc(mealsHandler.Create)))
	mux.Handle("GET /api/v1/meals", authMw(http.HandlerFunc(mealsHandler.List)))
	mux.Handle("PUT /api/v1/meals/{id}", authMw(http.HandlerFunc(mealsHandler.Update)))
	mux.Handle("DELETE /api/v1/meals/{id}", authMw(http.HandlerFunc(mealsHandler.Delete)))

	// Внешние middleware применяются ко всем маршрутам
	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(rateLimit, rateWindow, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("PlateSync server listening", "addr", addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func printVersion() {
	fmt.Printf("PlateSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
