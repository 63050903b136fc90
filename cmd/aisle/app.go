package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/aisle/internal/adapter"
	"github.com/mmcdole/aisle/internal/adapter/source"
	"github.com/mmcdole/aisle/internal/query"
	"github.com/mmcdole/aisle/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// app holds what every command needs once the config is loaded
type app struct {
	cfg        *adapter.Config
	logger     *slog.Logger
	source     source.CatalogSource
	builder    query.Builder
	categories *service.CategoryService

	logCloser io.Closer
	metrics   *http.Server
}

// newApp loads config, sets up logging and metrics and creates the catalog
// client
func newApp(configPath string) (*app, error) {
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		logCloser = io.NopCloser(nil)
	}
	slog.SetDefault(logger)
	logger.Debug("config loaded", "path", configPath, "catalog", cfg.Catalog.BaseURL)

	client, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}

	builder := query.NewBuilder(client.BaseURL())
	builder.Limit = cfg.Catalog.Limit

	a := &app{
		cfg:        cfg,
		logger:     logger,
		source:     client,
		builder:    builder,
		categories: service.NewCategoryService(client, logger),
		logCloser:  logCloser,
	}

	if cfg.Metrics.Addr != "" {
		a.metrics = startMetricsServer(cfg.Metrics.Addr, logger)
	}

	return a, nil
}

func (a *app) newFetcher() *service.CatalogFetcher {
	return service.NewCatalogFetcher(a.source, a.builder, a.logger)
}

// Close stops the metrics listener and releases the log file
func (a *app) Close() {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.metrics.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	a.logCloser.Close()
}

func startMetricsServer(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listener started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", "addr", addr, "error", err)
		}
	}()
	return srv
}
