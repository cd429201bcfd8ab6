// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package config loads and validates the service configuration from layered
// sources: built-in defaults, an optional YAML file, and environment
// variables, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the AcademiTrend API service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Models   ModelsConfig   `koanf:"models"`
	Database DatabaseConfig `koanf:"database"`
	Forecast ForecastConfig `koanf:"forecast"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// DataConfig holds the paths of the CSV datasets the service reads.
// Every path is re-read per request; a missing file yields an error
// envelope, never a crash.
type DataConfig struct {
	Dir                  string `koanf:"dir"`
	CoursePredictions    string `koanf:"course_predictions"`
	Enrollments          string `koanf:"enrollments"`
	Applications20162023 string `koanf:"applications_2016_2023"`
	Applications20052015 string `koanf:"applications_2005_2015"`
	PathwayForecasts     string `koanf:"pathway_forecasts"`
	EnrollmentTrend      string `koanf:"enrollment_trend"`
	StudentRoster        string `koanf:"student_roster"`
}

// ModelsConfig holds the paths of the fitted model artifacts.
type ModelsConfig struct {
	Dir             string        `koanf:"dir"`              // pathway forecasting artifacts (*.json)
	FeatureEngineer string        `koanf:"feature_engineer"` // salary feature engineer artifact
	TrainedModel    string        `koanf:"trained_model"`    // salary regression artifact
	WatchInterval   time.Duration `koanf:"watch_interval"`
}

// DatabaseConfig holds DuckDB settings. The service uses an in-memory
// database; CSV files are queried in place via read_csv_auto.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use runtime.NumCPU()
}

// ForecastConfig bounds the on-demand forecasting endpoints.
type ForecastConfig struct {
	DefaultYears       int `koanf:"default_years"`        // pathway horizon when the body omits forecast_years
	CourseDefaultYears int `koanf:"course_default_years"` // course window when the body omits forecast_years
	MaxYears           int `koanf:"max_years"`
	RecomputePerSec    int `koanf:"recompute_per_sec"` // rate limit for recompute endpoints
}

// APIConfig holds API response shaping settings.
type APIConfig struct {
	TopN              int `koanf:"top_n"` // size of top-N aggregation rankings
	MaxHistoricalRows int `koanf:"max_historical_rows"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // "none", "basic", "jwt"
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	AdminUsername     string        `koanf:"admin_username"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("server.environment must be development, staging, or production, got %q", c.Server.Environment)
	}

	switch c.Security.AuthMode {
	case "none":
	case "basic":
		if c.Security.AdminUsername == "" || c.Security.AdminPassword == "" {
			return fmt.Errorf("security.admin_username and security.admin_password are required when auth_mode is basic")
		}
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters when auth_mode is jwt")
		}
		// The login endpoint verifies against the admin credentials.
		if c.Security.AdminUsername == "" || c.Security.AdminPassword == "" {
			return fmt.Errorf("security.admin_username and security.admin_password are required when auth_mode is jwt")
		}
	default:
		return fmt.Errorf("security.auth_mode must be none, basic, or jwt, got %q", c.Security.AuthMode)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	if c.Forecast.DefaultYears < 1 {
		return fmt.Errorf("forecast.default_years must be at least 1, got %d", c.Forecast.DefaultYears)
	}
	if c.Forecast.CourseDefaultYears < 1 {
		return fmt.Errorf("forecast.course_default_years must be at least 1, got %d", c.Forecast.CourseDefaultYears)
	}
	if c.Forecast.MaxYears < c.Forecast.DefaultYears {
		return fmt.Errorf("forecast.max_years (%d) must be >= forecast.default_years (%d)",
			c.Forecast.MaxYears, c.Forecast.DefaultYears)
	}
	if c.Forecast.MaxYears < c.Forecast.CourseDefaultYears {
		return fmt.Errorf("forecast.max_years (%d) must be >= forecast.course_default_years (%d)",
			c.Forecast.MaxYears, c.Forecast.CourseDefaultYears)
	}

	if c.API.TopN < 1 {
		return fmt.Errorf("api.top_n must be at least 1, got %d", c.API.TopN)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
