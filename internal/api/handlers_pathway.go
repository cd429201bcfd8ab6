// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/academitrend/academitrend/internal/database"
	"github.com/academitrend/academitrend/internal/forecast"
	"github.com/academitrend/academitrend/internal/models"
)

// PathForecast runs on-demand pathway forecasting for the default horizon.
// Registered under both /api/forecast and /api/path-forecast.
func (h *Handler) PathForecast(w http.ResponseWriter, r *http.Request) {
	h.runPathForecast(w, r, h.cfg.Forecast.DefaultYears, nil)
}

// PathForecastYears runs on-demand pathway forecasting for the horizon
// given in the request body.
func (h *Handler) PathForecastYears(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeForecastYears(r, h.cfg.Forecast.DefaultYears)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	h.runPathForecast(w, r, req.ForecastYears, nil)
}

// FilteredPathwayForecastsYears forecasts for N years and then narrows the
// result to the filter dimensions in the request body.
func (h *Handler) FilteredPathwayForecastsYears(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeForecastYears(r, h.cfg.Forecast.DefaultYears)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	filters := models.PathwayFilters{
		DegreeProgram: req.DegreeProgram,
		Pathway:       req.Pathway,
		Year:          req.Year,
		Model:         req.Model,
	}
	h.runPathForecast(w, r, req.ForecastYears, &filters)
}

func (h *Handler) runPathForecast(w http.ResponseWriter, r *http.Request, years int, filters *models.PathwayFilters) {
	path := h.cfg.Data.EnrollmentTrend

	series, err := h.db.GetPathwaySeries(r.Context(), path)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	result, err := h.engine.Run(r.Context(), series, years)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	forecasts := result.Forecasts
	if filters != nil && !filters.Empty() {
		forecasts = filterForecasts(forecasts, *filters)
	}

	respondJSON(w, http.StatusOK, models.PathwayForecastResponse{
		Envelope:       models.OK("pathway enrollment forecast computed"),
		System:         "pathway_enrollment_forecasting",
		Dataset:        datasetName(path),
		ForecastYears:  years,
		FiltersApplied: filters,
		Forecasts:      forecasts,
		TotalForecasts: len(forecasts),
		ModelsUsed:     result.ModelsUsed,
		YearsPredicted: result.YearsPredicted,
		Source:         "on_demand_forecast",
	})
}

// filterForecasts narrows a computed forecast set: program, pathway, and
// model match case-insensitively as substrings; year matches exactly.
func filterForecasts(forecasts []models.PathwayForecast, filters models.PathwayFilters) []models.PathwayForecast {
	filtered := make([]models.PathwayForecast, 0, len(forecasts))
	for _, f := range forecasts {
		if filters.DegreeProgram != "" && !containsFold(f.DegreeProgram, filters.DegreeProgram) {
			continue
		}
		if filters.Pathway != "" && !containsFold(f.Pathway, filters.Pathway) {
			continue
		}
		if filters.Model != "" && !containsFold(f.Model, filters.Model) {
			continue
		}
		if filters.Year != nil && f.Year != *filters.Year {
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// LoadPathwayForecasts returns the pre-generated pathway forecast dataset.
func (h *Handler) LoadPathwayForecasts(w http.ResponseWriter, r *http.Request) {
	h.respondStoredPathwayForecasts(w, r, database.PathwayForecastsFilter{}, nil)
}

// FilteredPathwayForecasts returns pre-generated forecasts narrowed by the
// degree_program, pathway, year, and model query parameters.
func (h *Handler) FilteredPathwayForecasts(w http.ResponseWriter, r *http.Request) {
	year, err := getIntParam(r, "year")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	filter := database.PathwayForecastsFilter{
		DegreeProgram: r.URL.Query().Get("degree_program"),
		Pathway:       r.URL.Query().Get("pathway"),
		Year:          year,
		Model:         r.URL.Query().Get("model"),
	}
	filters := models.PathwayFilters{
		DegreeProgram: filter.DegreeProgram,
		Pathway:       filter.Pathway,
		Year:          filter.Year,
		Model:         filter.Model,
	}

	h.respondStoredPathwayForecasts(w, r, filter, &filters)
}

func (h *Handler) respondStoredPathwayForecasts(w http.ResponseWriter, r *http.Request, filter database.PathwayForecastsFilter, filters *models.PathwayFilters) {
	path := h.cfg.Data.PathwayForecasts

	forecasts, err := h.db.GetPathwayForecasts(r.Context(), path, filter)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.PathwayForecastResponse{
		Envelope:       models.OK("pathway forecasts loaded"),
		System:         "pathway_enrollment_forecasting",
		Dataset:        datasetName(path),
		FiltersApplied: filters,
		Forecasts:      forecasts,
		TotalForecasts: len(forecasts),
		Source:         datasetName(path),
	})
}

// PathwayData returns the historical enrollment trend rows with aggregate
// statistics.
func (h *Handler) PathwayData(w http.ResponseWriter, r *http.Request) {
	path := h.cfg.Data.EnrollmentTrend

	records, err := h.db.GetPathwayTrend(r.Context(), path)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	stats, err := h.db.GetPathwayTrendStats(r.Context(), path)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.PathwayDataResponse{
		Envelope:          models.OK("pathway enrollment trend loaded"),
		Dataset:           datasetName(path),
		SummaryStatistics: *stats,
		Records:           records,
		Source:            datasetName(path),
	})
}

// CheckModels returns the saved model artifact inventory, rescanned on
// demand, plus the salary artifact state.
func (h *Handler) CheckModels(w http.ResponseWriter, r *http.Request) {
	h.registry.Rescan()
	inventory := h.registry.Inventory()

	respondJSON(w, http.StatusOK, models.ModelInventoryResponse{
		Envelope:        models.OK("model inventory scanned"),
		ModelsDirectory: h.registry.Dir(),
		TotalModels:     len(inventory),
		LoadableModels:  h.registry.LoadableCount(),
		Models:          inventory,
		SalaryModel:     h.salaryModelInfo(),
	})
}

func (h *Handler) salaryModelInfo() models.SalaryModelInfo {
	fePath, modelPath := h.predictor.ArtifactPaths()
	info := models.SalaryModelInfo{
		Loaded:          h.predictor.Loaded(),
		FeatureEngineer: datasetName(fePath),
		TrainedModel:    datasetName(modelPath),
	}
	if !info.Loaded {
		info.UnavailableReason = "artifacts missing or invalid"
	}
	return info
}

// Predictions runs both prediction systems and returns them in one
// combined overview.
func (h *Handler) Predictions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pathwaySystem := models.PredictionSystem{
		System:  "pathway_enrollment_prediction",
		Dataset: datasetName(h.cfg.Data.EnrollmentTrend),
		Models:  forecast.ModelLinearTrend + ", " + forecast.ModelHolt,
	}
	series, err := h.db.GetPathwaySeries(ctx, h.cfg.Data.EnrollmentTrend)
	if err == nil {
		var result *forecast.Result
		if result, err = h.engine.Run(ctx, series, h.cfg.Forecast.DefaultYears); err == nil {
			pathwaySystem.Data = result.Forecasts
		}
	}
	if err != nil {
		pathwaySystem.Data = models.NewErrorResponse(err.Error())
	}
	pathwaySystem.AvailableModels = h.registry.Inventory()

	courseSystem := models.PredictionSystem{
		System:  "course_enrollment_prediction",
		Dataset: datasetName(h.cfg.Data.CoursePredictions),
		Models:  "pre-generated per-course prediction models",
	}
	predictions, err := h.db.GetCoursePredictions(ctx, h.cfg.Data.CoursePredictions, database.CoursePredictionsFilter{})
	if err != nil {
		courseSystem.Data = models.NewErrorResponse(err.Error())
	} else {
		courseSystem.Data = predictions
	}

	respondJSON(w, http.StatusOK, models.CombinedPredictionsResponse{
		PathwayEnrollmentPrediction: pathwaySystem,
		CourseEnrollmentPrediction:  courseSystem,
		Timestamp:                   time.Now().UTC().Format(time.RFC3339),
	})
}
