// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package models

// PathwayForecast is one forecast row for a degree-program/pathway pair:
// the predicted enrollment for a future year under a named model.
type PathwayForecast struct {
	Year           int     `json:"year"`
	DegreeProgram  string  `json:"degree_program"`
	Pathway        string  `json:"pathway"`
	EnrollmentPred float64 `json:"enrollment_pred"`
	Model          string  `json:"model"`
}

// PathwayTrendRecord is a row from the historical enrollment trend dataset.
type PathwayTrendRecord struct {
	Year          int    `json:"year"`
	DegreeProgram string `json:"degree_program"`
	Pathway       string `json:"pathway"`
	Enrollments   int    `json:"enrollments"`
}

// PathwayFilters echoes the filter criteria applied to a pathway forecast
// query. Nil/empty fields mean the dimension was not filtered.
type PathwayFilters struct {
	DegreeProgram string `json:"degree_program,omitempty"`
	Pathway       string `json:"pathway,omitempty"`
	Year          *int   `json:"year"`
	Model         string `json:"model,omitempty"`
}

// Empty reports whether no filter dimension is set.
func (f PathwayFilters) Empty() bool {
	return f.DegreeProgram == "" && f.Pathway == "" && f.Year == nil && f.Model == ""
}

// PathwayForecastResponse is returned by the pathway forecasting endpoints,
// both the pre-generated CSV views and the on-demand recompute views.
type PathwayForecastResponse struct {
	Envelope
	System         string            `json:"system,omitempty"`
	Dataset        string            `json:"dataset,omitempty"`
	ForecastYears  int               `json:"forecast_years,omitempty"`
	FiltersApplied *PathwayFilters   `json:"filters_applied,omitempty"`
	Forecasts      []PathwayForecast `json:"forecasts"`
	TotalForecasts int               `json:"total_forecasts"`
	ModelsUsed     []string          `json:"models_used,omitempty"`
	YearsPredicted []int             `json:"years_predicted,omitempty"`
	Source         string            `json:"source"`
}

// PathwayDataStats aggregates the enrollment trend dataset.
type PathwayDataStats struct {
	TotalRecords         int   `json:"total_records"`
	UniqueDegreePrograms int   `json:"unique_degree_programs"`
	UniquePathways       int   `json:"unique_pathways"`
	YearsCovered         []int `json:"years_covered"`
	TotalEnrollments     int   `json:"total_enrollments"`
}

// PathwayDataResponse is returned by the pathway data endpoint: raw trend
// rows plus aggregate statistics.
type PathwayDataResponse struct {
	Envelope
	Dataset           string               `json:"dataset"`
	SummaryStatistics PathwayDataStats     `json:"summary_statistics"`
	Records           []PathwayTrendRecord `json:"records"`
	Source            string               `json:"source"`
}

// ModelArtifact describes one saved model artifact on disk.
type ModelArtifact struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Model    string `json:"model"`
	Target   string `json:"target"`
	SizeByte int64  `json:"size_bytes"`
	Loadable bool   `json:"loadable"`
}

// ModelInventoryResponse is returned by the model availability endpoint.
type ModelInventoryResponse struct {
	Envelope
	ModelsDirectory string          `json:"models_directory"`
	TotalModels     int             `json:"total_models"`
	LoadableModels  int             `json:"loadable_models"`
	Models          []ModelArtifact `json:"models"`
	SalaryModel     SalaryModelInfo `json:"salary_model"`
}

// SalaryModelInfo reports whether the salary model artifacts are loaded.
type SalaryModelInfo struct {
	Loaded            bool   `json:"loaded"`
	FeatureEngineer   string `json:"feature_engineer,omitempty"`
	TrainedModel      string `json:"trained_model,omitempty"`
	UnavailableReason string `json:"unavailable_reason,omitempty"`
}

// PredictionSystem wraps one prediction subsystem's output in the combined
// overview response.
type PredictionSystem struct {
	System          string `json:"system"`
	Dataset         string `json:"dataset"`
	Models          string `json:"models"`
	AvailableModels any    `json:"available_models,omitempty"`
	Data            any    `json:"data"`
}

// CombinedPredictionsResponse is returned by the overview endpoint that runs
// both the pathway and course prediction systems.
type CombinedPredictionsResponse struct {
	PathwayEnrollmentPrediction PredictionSystem `json:"pathway_enrollment_prediction"`
	CourseEnrollmentPrediction  PredictionSystem `json:"course_enrollment_prediction"`
	Timestamp                   string           `json:"timestamp"`
}
