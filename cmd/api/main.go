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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vaughan-dsouza/medvault/internal/auth"
	"github.com/vaughan-dsouza/medvault/internal/config"
	"github.com/vaughan-dsouza/medvault/internal/db"
	"github.com/vaughan-dsouza/medvault/internal/handlers"
	"github.com/vaughan-dsouza/medvault/internal/logging"
	"github.com/vaughan-dsouza/medvault/internal/metrics"
	"github.com/vaughan-dsouza/medvault/internal/service"
	"github.com/vaughan-dsouza/medvault/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, cfg.Pool)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, dbConn.DB); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlg, cfg.TokenTTL)
	if err != nil {
		return err
	}

	logger.Info("token service ready", "alg", cfg.JWTAlg, "ttl", tokens.TTL())

	st := store.NewPostgres(dbConn)
	svc, err := service.NewAuthService(st, hasher, tokens, service.WithLogger(logger))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(dbConn.DB, "medvault"),
	)

	router := handlers.NewRouter(handlers.Deps{
		Auth:        svc,
		DB:          st,
		Metrics:     metrics.NewAuth(reg),
		Gatherer:    reg,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
