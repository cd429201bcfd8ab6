// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/academitrend/config.yaml",
	"/etc/academitrend/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5050,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Data: DataConfig{
			Dir:                  "data",
			CoursePredictions:    filepath.Join("data", "course", "predictions.csv"),
			Enrollments:          filepath.Join("data", "course", "enrollments.csv"),
			Applications20162023: filepath.Join("data", "course", "applications_2016_2023.csv"),
			Applications20052015: filepath.Join("data", "course", "applications_2005_2015.csv"),
			PathwayForecasts:     filepath.Join("data", "path", "pathway_forecasts.csv"),
			EnrollmentTrend:      filepath.Join("data", "path", "enrollment_trend.csv"),
			StudentRoster:        filepath.Join("data", "salary", "students.csv"),
		},
		Models: ModelsConfig{
			Dir:             filepath.Join("models", "saved_models"),
			FeatureEngineer: filepath.Join("models", "salary", "feature_engineer.json"),
			TrainedModel:    filepath.Join("models", "salary", "trained_model.json"),
			WatchInterval:   30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Forecast: ForecastConfig{
			DefaultYears:       5,
			CourseDefaultYears: 7,
			MaxYears:           50,
			RecomputePerSec:    10,
		},
		API: APIConfig{
			TopN:              10,
			MaxHistoricalRows: 10000,
		},
		Security: SecurityConfig{
			AuthMode:          "none",
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			AdminUsername:     "",
			AdminPassword:     "",
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: override any setting
//
// Precedence: ENV > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env strings become slices for known slice fields
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file. The CONFIG_PATH environment
// variable wins; otherwise the default paths are tried in order.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated
// slices when they arrive as env var strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
//
// Examples:
//   - PORT -> server.port
//   - DATA_DIR -> data.dir
//   - MODELS_DIR -> models.dir
//   - AUTH_MODE -> security.auth_mode
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"port":        "server.port",
		"http_port":   "server.port",
		"host":        "server.host",
		"environment": "server.environment",

		// Dataset mappings
		"data_dir":                   "data.dir",
		"course_predictions_csv":     "data.course_predictions",
		"enrollments_csv":            "data.enrollments",
		"applications_2016_2023_csv": "data.applications_2016_2023",
		"applications_2005_2015_csv": "data.applications_2005_2015",
		"pathway_forecasts_csv":      "data.pathway_forecasts",
		"enrollment_trend_csv":       "data.enrollment_trend",
		"student_roster_csv":         "data.student_roster",

		// Model artifact mappings
		"models_dir":            "models.dir",
		"feature_engineer_path": "models.feature_engineer",
		"trained_model_path":    "models.trained_model",
		"models_watch_interval": "models.watch_interval",

		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",

		// Forecast mappings
		"forecast_default_years":        "forecast.default_years",
		"forecast_course_default_years": "forecast.course_default_years",
		"forecast_max_years":            "forecast.max_years",
		"forecast_recompute_per_sec":    "forecast.recompute_per_sec",

		// API shaping mappings
		"top_n":               "api.top_n",
		"max_historical_rows": "api.max_historical_rows",

		// Security mappings
		"auth_mode":           "security.auth_mode",
		"jwt_secret":          "security.jwt_secret",
		"session_timeout":     "security.session_timeout",
		"admin_username":      "security.admin_username",
		"admin_password":      "security.admin_password",
		"rate_limit_reqs":     "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"rate_limit_disabled": "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if path, ok := envMappings[key]; ok {
		return path
	}

	// Unmapped variables are ignored to avoid polluting the config tree
	// with unrelated environment noise.
	return ""
}
