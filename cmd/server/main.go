// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package main is the entry point of the Breadbasket HTTP server.
//
// The server stores daily sales in DuckDB, mines frequent itemsets and
// association rules per date with Apriori, and exports each result as JSON.
//
// # Startup
//
//  1. Configuration: defaults, optional YAML file, then environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: DuckDB sales store
//  4. Result cache and JSON export writer
//  5. Analysis service and Chi router
//  6. Supervisor tree: HTTP server, DuckDB checkpoints, optional scheduled mining
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains
// in-flight requests within server.shutdown_timeout, then the database is
// checkpointed and closed.
//
// # Example
//
//	MINING_MIN_SUPPORT=0.05 SERVER_PORT=8000 ./breadbasket
//	curl -X POST localhost:8000/api/v1/ventas/2024-03-15 \
//	  -d '[{"id_venta":1,"producto":{"id_producto":2}}]'
//	curl localhost:8000/api/v1/apriori/2024-03-15?min_confidence=0.6
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/breadbasket/internal/analysis"
	"github.com/tomtom215/breadbasket/internal/api"
	"github.com/tomtom215/breadbasket/internal/cache"
	"github.com/tomtom215/breadbasket/internal/config"
	"github.com/tomtom215/breadbasket/internal/database"
	"github.com/tomtom215/breadbasket/internal/export"
	"github.com/tomtom215/breadbasket/internal/logging"
	"github.com/tomtom215/breadbasket/internal/supervisor"
	"github.com/tomtom215/breadbasket/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Float64("min_support", cfg.Mining.MinSupport).
		Float64("min_confidence", cfg.Mining.MinConfidence).
		Bool("export", cfg.Export.Enabled).
		Bool("scheduler", cfg.Scheduler.Enabled).
		Msg("Starting Breadbasket")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	var results *cache.ResultCache
	if cfg.Cache.Enabled {
		results = cache.NewResultCache(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	var sink analysis.Sink
	if cfg.Export.Enabled {
		sink = export.NewWriter(cfg.Export.DataDir)
	}

	svc, err := analysis.NewService(db, results, sink, cfg.Mining.Params(), logging.Logger())
	if err != nil {
		return fmt.Errorf("create analysis service: %w", err)
	}

	handler := api.NewHandler(svc, api.HandlerOptions{
		DB:      db,
		Results: results,
		Version: version,
		Timeout: cfg.Server.Timeout,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Mining runs inside the handler, so writes get extra headroom.
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(slog.New(logging.NewSlogHandler()), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Database.Path != ":memory:" {
		tree.AddDataService(services.NewCheckpointService(db, 5*time.Minute, logging.Logger()))
	}
	if cfg.Scheduler.Enabled {
		tree.AddMiningService(services.NewMiningService(svc, services.MiningServiceConfig{
			RunOnStartup: cfg.Scheduler.RunOnStartup,
			Interval:     cfg.Scheduler.Interval,
		}, logging.Logger()))
		logging.Info().Dur("interval", cfg.Scheduler.Interval).Msg("Scheduled mining enabled")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.Logger()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
