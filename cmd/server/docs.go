// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package main provides the AcademiTrend forecast API server
//
// @title AcademiTrend Forecast API
// @version 1.0
// @description Course enrollment, degree-pathway, and job-salary forecasting
// @description over pre-computed CSV datasets and fitted model artifacts.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {"status": "error", "message": "Human-readable error message"}
// @description ```
// @description
// @description Salary endpoints return 503 while the model artifacts are not
// @description loaded. Missing datasets return 500 with an error envelope.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/academitrend/academitrend/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5050
// @BasePath /
// @schemes http
//
// @tag.name Core
// @tag.description Health checks, service info, and the combined prediction overview
//
// @tag.name Course
// @tag.description Course enrollment prediction and historical data endpoints
//
// @tag.name Pathway
// @tag.description Degree-pathway enrollment forecasting endpoints
//
// @tag.name Salary
// @tag.description Job salary prediction endpoints backed by the fitted regression artifacts
//
// @tag.name Models
// @tag.description Saved model artifact inventory
package main
