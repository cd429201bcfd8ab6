// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package metrics provides Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Dataset query performance (DuckDB over CSV)
// - Forecast and salary model predictions
// - Model artifact loading
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Dataset Query Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "dataset"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "dataset", "error_type"},
	)

	DatasetRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_loaded_total",
			Help: "Total number of CSV rows loaded per dataset",
		},
		[]string{"dataset"},
	)

	// Prediction Metrics
	ModelPredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_predictions_total",
			Help: "Total number of model predictions served",
		},
		[]string{"system", "model"},
	)

	ModelPredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_prediction_duration_seconds",
			Help:    "Duration of model prediction computations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"system"},
	)

	// Model Artifact Metrics
	ModelLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_load_failures_total",
			Help: "Total number of model artifact load failures",
		},
		[]string{"artifact"},
	)

	ModelsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "models_loaded",
			Help: "Current number of loadable model artifacts",
		},
	)

	SalaryModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "salary_model_loaded",
			Help: "Whether the salary model artifacts are loaded (1) or not (0)",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records a dataset query metric.
func RecordDBQuery(operation, dataset string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, dataset).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, dataset, errorType).Inc()
	}
}

// RecordDatasetRows records the number of rows loaded from a dataset.
func RecordDatasetRows(dataset string, rows int) {
	DatasetRowsLoaded.WithLabelValues(dataset).Add(float64(rows))
}

// RecordPrediction records a served model prediction.
func RecordPrediction(system, model string, duration time.Duration) {
	ModelPredictions.WithLabelValues(system, model).Inc()
	ModelPredictionDuration.WithLabelValues(system).Observe(duration.Seconds())
}

// RecordModelLoadFailure records a model artifact load failure.
func RecordModelLoadFailure(artifact string) {
	ModelLoadFailures.WithLabelValues(artifact).Inc()
}

// SetSalaryModelLoaded updates the salary model availability gauge.
func SetSalaryModelLoaded(loaded bool) {
	if loaded {
		SalaryModelLoaded.Set(1)
	} else {
		SalaryModelLoaded.Set(0)
	}
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
