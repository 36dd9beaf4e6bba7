package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/user-records/internal/config"
	"github.com/msomdec/user-records/internal/handler"
	"github.com/msomdec/user-records/internal/metrics"
	"github.com/msomdec/user-records/internal/repository/sqlite"
	"github.com/msomdec/user-records/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.CreateSchema(context.Background()); err != nil {
		slog.Error("failed to create schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database schema ready", "path", db.Path())

	generator := service.NewGenerator(nil, cfg.MaxGenerateCount)
	userService := service.NewUserService(db.Users(), generator)
	fileService := service.NewFileService(db.FileStore(), cfg.MaxUploadBytes)

	limiter := service.NewTokenBucket(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Close()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, db, userService, fileService, limiter, cfg.SlowMaxDelay)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           metrics.InstrumentHandler(handler.RequestLogger(handler.SecurityHeaders(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
