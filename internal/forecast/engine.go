// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package forecast

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/stat"

	"github.com/academitrend/academitrend/internal/database"
	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/metrics"
	"github.com/academitrend/academitrend/internal/models"
)

// minSeriesPoints is the minimum number of observations required to fit a
// fallback trend for a pathway without a saved artifact.
const minSeriesPoints = 2

// Result is the output of one forecasting run.
type Result struct {
	Forecasts      []models.PathwayForecast
	ModelsUsed     []string
	YearsPredicted []int
}

// Engine projects pathway enrollment series into future years. Saved
// artifacts take precedence; a per-process rate limiter bounds on-demand
// recomputation.
type Engine struct {
	registry *Registry
	limiter  *rate.Limiter
}

// NewEngine creates a forecasting engine over the artifact registry.
// recomputePerSec bounds how many forecasting runs may start per second;
// zero or negative disables the limit.
func NewEngine(registry *Registry, recomputePerSec int) *Engine {
	limit := rate.Inf
	if recomputePerSec > 0 {
		limit = rate.Limit(recomputePerSec)
	}
	return &Engine{
		registry: registry,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Run forecasts every series for the given number of future years. Series
// too short to fit and lacking an artifact are skipped with a warning; the
// run fails only when no series could be forecast at all.
func (e *Engine) Run(ctx context.Context, series []database.PathwaySeries, years int) (*Result, error) {
	if years < 1 {
		return nil, fmt.Errorf("forecast years must be at least 1, got %d", years)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("forecast run canceled: %w", err)
	}

	start := time.Now()
	forecasts := make([]models.PathwayForecast, 0, len(series)*years)
	modelSet := make(map[string]struct{})
	yearSet := make(map[int]struct{})
	skipped := 0

	for _, s := range series {
		rows, modelName, err := e.forecastSeries(s, years)
		if err != nil {
			logging.Ctx(ctx).Warn().
				Err(err).
				Str("degree_program", s.DegreeProgram).
				Str("pathway", s.Pathway).
				Msg("skipping pathway series")
			skipped++
			continue
		}

		forecasts = append(forecasts, rows...)
		modelSet[modelName] = struct{}{}
		for _, row := range rows {
			yearSet[row.Year] = struct{}{}
		}
		metrics.RecordPrediction("pathway", modelName, time.Since(start))
	}

	if len(forecasts) == 0 {
		return nil, fmt.Errorf("no pathway series could be forecast (%d skipped)", skipped)
	}

	sort.Slice(forecasts, func(i, j int) bool {
		a, b := forecasts[i], forecasts[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.DegreeProgram != b.DegreeProgram {
			return a.DegreeProgram < b.DegreeProgram
		}
		return a.Pathway < b.Pathway
	})

	return &Result{
		Forecasts:      forecasts,
		ModelsUsed:     sortedKeys(modelSet),
		YearsPredicted: sortedIntKeys(yearSet),
	}, nil
}

// forecastSeries produces the future rows for one series using its saved
// artifact, or a freshly fitted linear trend when no artifact exists.
func (e *Engine) forecastSeries(s database.PathwaySeries, years int) ([]models.PathwayForecast, string, error) {
	if artifact := e.registry.Lookup(s.DegreeProgram, s.Pathway); artifact != nil {
		return projectArtifact(artifact, years), artifact.Model, nil
	}

	if len(s.Years) < minSeriesPoints {
		return nil, "", fmt.Errorf("series has %d points, need at least %d", len(s.Years), minSeriesPoints)
	}

	xs := make([]float64, len(s.Years))
	for i, y := range s.Years {
		xs[i] = float64(y)
	}
	intercept, slope := stat.LinearRegression(xs, s.Enrollments, nil, false)

	lastYear := s.Years[len(s.Years)-1]
	rows := make([]models.PathwayForecast, 0, years)
	for h := 1; h <= years; h++ {
		year := lastYear + h
		rows = append(rows, models.PathwayForecast{
			Year:           year,
			DegreeProgram:  s.DegreeProgram,
			Pathway:        s.Pathway,
			EnrollmentPred: clampNonNegative(intercept + slope*float64(year)),
			Model:          ModelLinearTrend,
		})
	}
	return rows, ModelLinearTrend, nil
}

// projectArtifact extends a fitted artifact forward from its last observed
// year.
func projectArtifact(a *Artifact, years int) []models.PathwayForecast {
	rows := make([]models.PathwayForecast, 0, years)
	for h := 1; h <= years; h++ {
		year := a.LastYear + h

		var pred float64
		switch a.Model {
		case ModelHolt:
			pred = a.Params.Level + float64(h)*a.Params.Trend
		default:
			pred = a.Params.Intercept + a.Params.Slope*float64(year)
		}

		rows = append(rows, models.PathwayForecast{
			Year:           year,
			DegreeProgram:  a.DegreeProgram,
			Pathway:        a.Pathway,
			EnrollmentPred: clampNonNegative(pred),
			Model:          a.Model,
		})
	}
	return rows
}

// clampNonNegative floors predictions at zero; enrollment cannot go
// negative no matter what the trend says.
func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
