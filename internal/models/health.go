// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package models

// HealthStatus is the payload of the full health check endpoint.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	SalaryModelLoaded bool    `json:"salary_model_loaded"`
	DatasetsAvailable int     `json:"datasets_available"`
	Uptime            float64 `json:"uptime"`
}

// HealthResponse wraps HealthStatus in the standard envelope.
type HealthResponse struct {
	Envelope
	Health HealthStatus `json:"health"`
}

// ServiceInfoResponse is returned by the root endpoint: the service banner
// plus the endpoint catalogue, mirroring the index page of the API.
type ServiceInfoResponse struct {
	Envelope
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// HelloResponse is the minimal liveness payload of the hello endpoint.
type HelloResponse struct {
	Envelope
}
