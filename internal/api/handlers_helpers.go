// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/academitrend/academitrend/internal/database"
	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/models"
	"github.com/academitrend/academitrend/internal/salary"
	"github.com/academitrend/academitrend/internal/validation"
)

// respondJSON sends a JSON response with caching headers and an ETag.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		logging.CtxErr(r.Context(), err).Int("status", status).Msg("request failed")
	}
	respondJSON(w, status, models.NewErrorResponse(message))
}

// respondMappedError classifies an error from the data or model layers:
// missing datasets and query failures map to 500, unencodable input to 400,
// an unloaded salary model to 503.
func (h *Handler) respondMappedError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, salary.ErrModelNotLoaded):
		respondError(w, r, http.StatusServiceUnavailable,
			"prediction service unavailable: model not loaded", err)
	case database.IsDatasetNotFound(err):
		respondError(w, r, http.StatusInternalServerError, err.Error(), err)
	default:
		respondError(w, r, http.StatusInternalServerError, err.Error(), err)
	}
}

// forecastYearsRequest is the body of the *-years POST endpoints.
type forecastYearsRequest struct {
	ForecastYears int `json:"forecast_years" validate:"gte=1"`

	// Course/pathway filter fields, ignored by endpoints that do not
	// filter.
	Year          *int   `json:"year"`
	University    string `json:"university"`
	Course        string `json:"course"`
	DegreeProgram string `json:"degree_program"`
	Pathway       string `json:"pathway"`
	Model         string `json:"model"`
}

// decodeForecastYears parses and bounds a forecast-years request body. An
// absent forecast_years defaults to defaultYears, which differs between the
// course and pathway endpoints.
func (h *Handler) decodeForecastYears(r *http.Request, defaultYears int) (*forecastYearsRequest, error) {
	req := forecastYearsRequest{ForecastYears: defaultYears}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, verr
	}
	if req.ForecastYears > h.cfg.Forecast.MaxYears {
		return nil, fmt.Errorf("forecast_years must be at most %d, got %d",
			h.cfg.Forecast.MaxYears, req.ForecastYears)
	}
	return &req, nil
}

// getIntParam extracts an optional integer query parameter. A present but
// non-numeric value is an error rather than silently ignored.
func getIntParam(r *http.Request, key string) (*int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("parameter %q must be an integer, got %q", key, value)
	}
	return &intValue, nil
}

// getFloatParam extracts an optional float query parameter.
func getFloatParam(r *http.Request, key string) (*float64, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("parameter %q must be a number, got %q", key, value)
	}
	return &floatValue, nil
}

// datasetName returns the base file name of a dataset path for the source
// field of responses.
func datasetName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
