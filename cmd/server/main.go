package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/recipebook/backend/internal/metrics"
	"github.com/anonto42/recipebook/backend/internal/push"
	"github.com/anonto42/recipebook/backend/internal/router"
	"github.com/anonto42/recipebook/backend/internal/storage"
	"github.com/anonto42/recipebook/backend/internal/validators"
	"github.com/anonto42/recipebook/backend/pkg/config"
	"github.com/anonto42/recipebook/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		return err
	}
	logger.Info("PostgreSQL auto-migrations completed")

	ctx := context.Background()
	deps := router.Dependencies{
		Config:   cfg,
		Postgres: db.Postgres,
		Mongo:    db.MongoDatabase(),
		Pusher:   push.Noop{},
		Blobs:    storage.Disabled{},
		Logger:   logger,
	}

	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	switch {
	case err == nil:
		deps.AuthClient = firebaseApp.AuthClient
		deps.Pusher = push.NewFCMSender(firebaseApp.MessagingClient)
		if firebaseApp.Bucket != nil {
			deps.Blobs = storage.NewBucketStore(firebaseApp.Bucket, firebaseApp.BucketName)
		}
	case cfg.AuthMode == config.AuthModeFirebase:
		return err
	default:
		logger.Warn("firebase unavailable, push and media uploads disabled", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = metrics.NewCollector(registry)

	e := echo.New()
	e.HideBanner = true
	// Cancelled on shutdown so open SSE streams end instead of holding Shutdown.
	streamCtx, endStreams := context.WithCancel(context.Background())
	defer endStreams()
	e.Server.BaseContext = func(net.Listener) context.Context { return streamCtx }
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, logger)
	waitPushes := router.SetupRoutes(e, deps)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           metrics.Handler(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics server starting", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API server starting", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serverErr:
		return err
	}
	logger.Info("shutting down API server")
	endStreams()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	_ = metricsServer.Shutdown(shutdownCtx)
	waitPushes()

	logger.Info("API server stopped gracefully")
	return nil
}
