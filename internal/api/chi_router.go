// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/academitrend/academitrend/internal/auth"
	"github.com/academitrend/academitrend/internal/config"
	"github.com/academitrend/academitrend/internal/metrics"
	"github.com/academitrend/academitrend/internal/middleware"
)

// Router wires the handler set into a Chi router.
type Router struct {
	cfg     *config.Config
	handler *Handler
	authMW  *auth.Middleware
}

// NewRouter creates the router.
func NewRouter(cfg *config.Config, handler *Handler, authMW *auth.Middleware) *Router {
	return &Router{cfg: cfg, handler: handler, authMW: authMW}
}

// Setup configures all HTTP routes and the middleware stack.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints get a permissive rate limit so monitoring can poll
	// frequently.
	r.Route("/api/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	if router.cfg.Security.AuthMode == "jwt" {
		r.Route("/api/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(5, 5*time.Minute))
			r.Post("/login", router.authMW.LoginHandler(router.cfg.Security.SessionTimeout))
		})
	}

	r.Group(func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Use(router.authMW.Authenticate)

		r.Get("/", router.handler.Root)
		r.Get("/api/hello", router.handler.Hello)

		r.Get("/api/forecast", router.handler.PathForecast)
		r.Get("/api/path-forecast", router.handler.PathForecast)
		r.Post("/api/path-forecast-years", router.handler.PathForecastYears)
		r.Get("/api/load-pathway-forecasts", router.handler.LoadPathwayForecasts)
		r.Get("/api/filtered-pathway-forecasts", router.handler.FilteredPathwayForecasts)
		r.Post("/api/filtered-pathway-forecasts-years", router.handler.FilteredPathwayForecastsYears)
		r.Get("/api/pathway-data", router.handler.PathwayData)
		r.Get("/api/check-models", router.handler.CheckModels)

		r.Get("/api/course-enrollment-prediction", router.handler.CourseEnrollmentPrediction)
		r.Post("/api/course-enrollment-prediction-years", router.handler.CourseEnrollmentPredictionYears)
		r.Get("/api/load-course-predictions", router.handler.LoadCoursePredictions)
		r.Get("/api/simple-course-enrollment-prediction", router.handler.SimpleCourseEnrollmentPrediction)
		r.Post("/api/filtered-course-predictions-years", router.handler.FilteredCoursePredictionsYears)
		r.Get("/api/course-historical-data", router.handler.CourseHistoricalData)

		r.Get("/api/predictions", router.handler.Predictions)

		r.Post("/api/job-salary-prediction", router.handler.JobSalaryPrediction)
		r.Get("/api/job-salary-input-schema", router.handler.JobSalaryInputSchema)
		r.Get("/api/filtered-job-salary-predictions", router.handler.FilteredJobSalaryPredictions)
		r.Get("/api/job-salary-growth", router.handler.JobSalaryGrowth)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	return r
}

// rateLimit returns the configured API rate limiter, or a no-op when
// disabled.
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	sec := router.cfg.Security
	if sec.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		sec.RateLimitReqs,
		sec.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, r, http.StatusTooManyRequests, "rate limit exceeded", nil)
		}),
	)
}
