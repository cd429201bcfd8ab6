// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package models

// CoursePrediction is a single row from the pre-generated course enrollment
// predictions dataset: one (university, course, year, model) cell with the
// model's predicted enrollments and applications.
type CoursePrediction struct {
	Year             int     `json:"year"`
	University       string  `json:"university"`
	CourseName       string  `json:"course_name"`
	EnrollmentsPred  float64 `json:"enrollments_pred"`
	ApplicationsPred float64 `json:"applications_pred"`
	Model            string  `json:"model"`
}

// CourseFilters echoes the filter criteria a client supplied. Nil/empty
// fields mean the dimension was not filtered.
type CourseFilters struct {
	Year       *int   `json:"year"`
	University string `json:"university,omitempty"`
	Course     string `json:"course,omitempty"`
	Model      string `json:"model,omitempty"`
}

// Empty reports whether no filter dimension is set.
func (f CourseFilters) Empty() bool {
	return f.Year == nil && f.University == "" && f.Course == "" && f.Model == ""
}

// CoursePredictionsResponse is returned by the detailed, filtered, and
// windowed course prediction endpoints.
type CoursePredictionsResponse struct {
	Envelope
	ViewType             string             `json:"view_type,omitempty"`
	Description          string             `json:"description,omitempty"`
	ForecastYears        int                `json:"forecast_years,omitempty"`
	FiltersApplied       *CourseFilters     `json:"filters_applied,omitempty"`
	Predictions          []CoursePrediction `json:"predictions"`
	TotalPredictions     int                `json:"total_predictions,omitempty"`
	TotalFilteredRecords int                `json:"total_filtered_records,omitempty"`
	ModelsUsed           []string           `json:"models_used,omitempty"`
	YearsPredicted       []int              `json:"years_predicted,omitempty"`
	Source               string             `json:"source"`
}

// CourseSummaryStats holds the high-level statistics block of the course
// prediction summary view.
type CourseSummaryStats struct {
	TotalPredictions   int      `json:"total_predictions"`
	UniqueUniversities int      `json:"unique_universities"`
	UniqueCourses      int      `json:"unique_courses"`
	ModelsUsed         []string `json:"models_used"`
	YearsPredicted     []int    `json:"years_predicted"`
	AvgEnrollmentPred  float64  `json:"avg_enrollment_pred"`
	AvgApplicationPred float64  `json:"avg_application_pred"`
	MaxEnrollmentPred  float64  `json:"max_enrollment_pred"`
	MinEnrollmentPred  float64  `json:"min_enrollment_pred"`
}

// ModelPerformance summarizes one model's predictions in the summary view.
type ModelPerformance struct {
	MeanEnrollment  float64 `json:"mean_enrollment"`
	PredictionCount int     `json:"prediction_count"`
}

// CourseSummaryResponse is the summary view over the predictions dataset.
type CourseSummaryResponse struct {
	Envelope
	ViewType                    string                      `json:"view_type"`
	Description                 string                      `json:"description"`
	SummaryStatistics           CourseSummaryStats          `json:"summary_statistics"`
	TopUniversitiesByEnrollment map[string]float64          `json:"top_universities_by_enrollment"`
	TopCoursesByEnrollment      map[string]float64          `json:"top_courses_by_enrollment"`
	ModelPerformanceSummary     map[string]ModelPerformance `json:"model_performance_summary"`
	Source                      string                      `json:"source"`
}

// EnrollmentRecord is a row from the raw historical enrollments dataset.
// AvgStartSal and GraduateEmploymentRate are nullable in the source CSV.
type EnrollmentRecord struct {
	University             string   `json:"university"`
	CourseName             string   `json:"course_name"`
	Year                   int      `json:"year"`
	Enrollments            int      `json:"enrollments"`
	AvgStartSal            *float64 `json:"avg_start_sal"`
	GraduateEmploymentRate *float64 `json:"graduate_employment_rate"`
}

// ApplicationRecord is a row from the raw historical applications datasets.
type ApplicationRecord struct {
	University   string   `json:"university"`
	CourseName   string   `json:"course_name"`
	District     *string  `json:"district"`
	Year         int      `json:"year"`
	Applications int      `json:"applications"`
	CutoffMark   *float64 `json:"cutoff_mark"`
}

// EnrollmentsSummary aggregates the historical enrollments dataset.
type EnrollmentsSummary struct {
	TotalRecords          int     `json:"total_records"`
	UniqueUniversities    int     `json:"unique_universities"`
	UniqueCourses         int     `json:"unique_courses"`
	YearsCovered          []int   `json:"years_covered"`
	TotalEnrollments      int     `json:"total_enrollments"`
	AvgEnrollmentsPerYear float64 `json:"avg_enrollments_per_year"`
}

// ApplicationsSummary aggregates the combined historical applications datasets.
type ApplicationsSummary struct {
	TotalRecords           int     `json:"total_records"`
	UniqueUniversities     int     `json:"unique_universities"`
	UniqueCourses          int     `json:"unique_courses"`
	YearsCovered           []int   `json:"years_covered"`
	TotalApplications      int     `json:"total_applications"`
	AvgApplicationsPerYear float64 `json:"avg_applications_per_year"`
}

// HistoricalSummary combines both historical dataset summaries.
type HistoricalSummary struct {
	Enrollments  EnrollmentsSummary  `json:"enrollments"`
	Applications ApplicationsSummary `json:"applications"`
}

// FilesLoaded reports which raw files contributed to a historical response.
// Entries are nil when the corresponding file was absent.
type FilesLoaded struct {
	Enrollments          *string `json:"enrollments"`
	Applications20162023 *string `json:"applications_2016_2023"`
	Applications20052015 *string `json:"applications_2005_2015"`
}

// CourseHistoricalResponse is returned by the historical data endpoint:
// raw records plus aggregate statistics and top-N rankings.
type CourseHistoricalResponse struct {
	Envelope
	System                        string              `json:"system"`
	DataSource                    string              `json:"data_source"`
	SummaryStatistics             HistoricalSummary   `json:"summary_statistics"`
	TopUniversitiesByEnrollments  map[string]int      `json:"top_universities_by_enrollments"`
	TopCoursesByEnrollments       map[string]int      `json:"top_courses_by_enrollments"`
	TopUniversitiesByApplications map[string]int      `json:"top_universities_by_applications"`
	TopCoursesByApplications      map[string]int      `json:"top_courses_by_applications"`
	EnrollmentsData               []EnrollmentRecord  `json:"enrollments_data"`
	ApplicationsData              []ApplicationRecord `json:"applications_data"`
	FilesLoaded                   FilesLoaded         `json:"files_loaded"`
}
