// Command extractd is the statement extraction daemon: it accepts multipart
// statement uploads, runs them through the extraction pipeline, optionally
// persists the results, and serves health and metrics endpoints.
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/handler"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/pdftext"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/service"
	"github.com/sudhakarans/expense-exterminator/internal/domain/transactions"
	"github.com/sudhakarans/expense-exterminator/pkg/config"
	"github.com/sudhakarans/expense-exterminator/pkg/db"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	var pdf service.TextExtractor
	if cfg.Extraction.OCREnabled {
		pdf = pdftext.New(logger, cfg.Extraction.OCRLanguage)
	}

	svc := service.New(service.Config{
		FileTimeout:   cfg.Extraction.FileTimeout,
		BatchWorkers:  cfg.Extraction.BatchWorkers,
		ReferenceYear: cfg.Extraction.ReferenceYear,
	}, logger, pdf)

	var store *transactions.Service
	if cfg.Database.Enabled {
		database, err := db.New(db.Config{
			DSN:             cfg.Database.DSN(),
			MaxConns:        25,
			MinConns:        5,
			MaxConnLifetime: 5 * time.Minute,
			MaxConnIdleTime: 10 * time.Minute,
		}, logger)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.RunMigrations(); err != nil {
			return err
		}
		store = transactions.NewService(transactions.NewRepository(database.Pool), logger)
		logger.Info("database connected, persistence enabled")
	}

	mux := http.NewServeMux()
	handler.NewExtractHandler(svc, store, logger, cfg.Server.MaxUploadBytes).Routes(mux)
	if cfg.Observability.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	var root http.Handler = mux
	root = handler.RateLimit(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst, root)
	root = cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(root)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
