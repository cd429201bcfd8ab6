// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package main is the entry point of the AcademiTrend forecast API.
//
// Startup order:
//
//  1. Configuration via Koanf v2 (defaults, optional YAML file, env vars)
//  2. Structured logging (zerolog)
//  3. DuckDB connection for CSV dataset queries
//  4. Forecast artifact registry and engine
//  5. Salary predictor over the fitted artifacts
//  6. Authentication middleware (none, basic, or jwt)
//  7. Chi router and supervised HTTP server
//
// The supervisor tree restarts the HTTP server and the model artifact
// watcher independently. SIGINT/SIGTERM trigger a graceful shutdown with
// the configured server timeout.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/academitrend/academitrend/docs" // generated swagger docs
	"github.com/academitrend/academitrend/internal/api"
	"github.com/academitrend/academitrend/internal/auth"
	"github.com/academitrend/academitrend/internal/config"
	"github.com/academitrend/academitrend/internal/database"
	"github.com/academitrend/academitrend/internal/forecast"
	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/salary"
	"github.com/academitrend/academitrend/internal/supervisor"
	"github.com/academitrend/academitrend/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("addr", cfg.Addr()).
		Msg("starting AcademiTrend forecast API")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close database")
		}
	}()

	registry := forecast.NewRegistry(cfg.Models.Dir)
	engine := forecast.NewEngine(registry, cfg.Forecast.RecomputePerSec)
	predictor := salary.NewPredictor(cfg.Models.FeatureEngineer, cfg.Models.TrainedModel)

	authMW, err := auth.NewMiddleware(&cfg.Security)
	if err != nil {
		return err
	}

	handler := api.NewHandler(cfg, db, registry, engine, predictor)
	router := api.NewRouter(cfg, handler, authMW)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))
	tree.AddDataService(services.NewModelWatcherService(registry, predictor, cfg.Models.WatchInterval, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)
	logging.Info().Str("addr", cfg.Addr()).Msg("HTTP server supervised and serving")

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutdown signal received")
		err = <-errCh
	case err = <-errCh:
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logging.Info().Msg("shutdown complete")
	return nil
}
