// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package api provides the HTTP handlers and Chi routing for the forecast
// service. Handlers follow one contract: a flat JSON envelope with status
// and message fields alongside the payload, errors mapped to {status:
// "error", message} with an appropriate HTTP code.
package api

import (
	"time"

	"github.com/academitrend/academitrend/internal/cache"
	"github.com/academitrend/academitrend/internal/config"
	"github.com/academitrend/academitrend/internal/database"
	"github.com/academitrend/academitrend/internal/forecast"
	"github.com/academitrend/academitrend/internal/salary"
)

// Version is the service version reported by the root and health endpoints.
const Version = "1.0.0"

// summaryCacheTTL bounds how long aggregate views are served from cache.
// Record-level endpoints are never cached so CSV edits show up immediately.
const summaryCacheTTL = 5 * time.Minute

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.DB
	registry  *forecast.Registry
	engine    *forecast.Engine
	predictor *salary.Predictor
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates the handler set.
func NewHandler(cfg *config.Config, db *database.DB, registry *forecast.Registry, engine *forecast.Engine, predictor *salary.Predictor) *Handler {
	return &Handler{
		cfg:       cfg,
		db:        db,
		registry:  registry,
		engine:    engine,
		predictor: predictor,
		cache:     cache.New(summaryCacheTTL),
		startTime: time.Now(),
	}
}
