// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package api

import (
	"net/http"
	"os"
	"time"

	"github.com/academitrend/academitrend/internal/models"
)

// Root returns the service banner and endpoint catalogue.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.ServiceInfoResponse{
		Envelope: models.OK("Welcome to the AcademiTrend forecast API"),
		Service:  "AcademiTrend",
		Version:  Version,
		Endpoints: map[string]string{
			"GET /api/hello":                                "hello data",
			"GET /api/forecast":                             "pathway enrollment forecasting",
			"GET /api/path-forecast":                        "pathway enrollment forecasting",
			"POST /api/path-forecast-years":                 "pathway forecasting for N years",
			"GET /api/load-pathway-forecasts":               "pre-generated pathway forecasts",
			"GET /api/filtered-pathway-forecasts":           "filtered pathway forecasts",
			"POST /api/filtered-pathway-forecasts-years":    "filtered pathway forecasting for N years",
			"GET /api/pathway-data":                         "historical enrollment trend data",
			"GET /api/check-models":                         "saved model artifact inventory",
			"GET /api/course-enrollment-prediction":         "detailed course enrollment predictions",
			"POST /api/course-enrollment-prediction-years":  "course predictions for the last N years",
			"GET /api/load-course-predictions":              "course prediction summary statistics",
			"GET /api/simple-course-enrollment-prediction":  "filtered course predictions",
			"POST /api/filtered-course-predictions-years":   "filtered course predictions for N years",
			"GET /api/course-historical-data":               "raw historical enrollments and applications",
			"GET /api/predictions":                          "combined pathway and course predictions",
			"POST /api/job-salary-prediction":               "job salary prediction for one student",
			"GET /api/job-salary-input-schema":              "salary prediction input schema",
			"GET /api/filtered-job-salary-predictions":      "salary predictions over the student roster",
			"GET /api/job-salary-growth":                    "average predicted salary per semester",
			"GET /api/health":                               "service health",
		},
	})
}

// Hello is the minimal liveness endpoint.
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HelloResponse{
		Envelope: models.OK("Hello from the AcademiTrend API"),
	})
}

// Health reports full service health: database connectivity, salary model
// state, and how many configured datasets are present on disk.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db.Ping(r.Context()) == nil

	status := "healthy"
	httpStatus := http.StatusOK
	if !dbConnected {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, httpStatus, models.HealthResponse{
		Envelope: models.OK("health check"),
		Health: models.HealthStatus{
			Status:            status,
			Version:           Version,
			DatabaseConnected: dbConnected,
			SalaryModelLoaded: h.predictor.Loaded(),
			DatasetsAvailable: h.countDatasets(),
			Uptime:            time.Since(h.startTime).Seconds(),
		},
	})
}

// HealthLive is the liveness probe: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HelloResponse{Envelope: models.OK("alive")})
}

// HealthReady is the readiness probe: the database must answer.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "database not ready", err)
		return
	}
	respondJSON(w, http.StatusOK, models.HelloResponse{Envelope: models.OK("ready")})
}

// countDatasets reports how many of the configured CSV datasets exist.
func (h *Handler) countDatasets() int {
	paths := []string{
		h.cfg.Data.CoursePredictions,
		h.cfg.Data.Enrollments,
		h.cfg.Data.Applications20162023,
		h.cfg.Data.Applications20052015,
		h.cfg.Data.PathwayForecasts,
		h.cfg.Data.EnrollmentTrend,
		h.cfg.Data.StudentRoster,
	}

	available := 0
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			available++
		}
	}
	return available
}
