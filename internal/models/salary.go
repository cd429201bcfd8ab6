// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package models

// StudentProfile is the input for a job salary prediction. Categorical
// fields must match the encodings the feature engineer was fitted with.
type StudentProfile struct {
	StudentID            string  `json:"student_id,omitempty"`
	DegreeProgram        string  `json:"degree_program" validate:"required"`
	Pathway              string  `json:"pathway" validate:"required"`
	GPA                  float64 `json:"gpa" validate:"gte=0,lte=4"`
	Semester             int     `json:"semester" validate:"gte=1,lte=12"`
	InternshipsCompleted int     `json:"internships_completed" validate:"gte=0"`
	ProjectsCompleted    int     `json:"projects_completed" validate:"gte=0"`
	CertificationsEarned int     `json:"certifications_earned" validate:"gte=0"`
}

// SalaryPrediction is the output of the job salary model for one student.
type SalaryPrediction struct {
	StudentID         string  `json:"student_id,omitempty"`
	PredictedSalary   float64 `json:"predicted_salary"`
	Currency          string  `json:"currency"`
	Pathway           string  `json:"pathway"`
	GPA               float64 `json:"gpa"`
	Semester          int     `json:"semester"`
	EmployabilityBand string  `json:"employability_band"`
}

// SalaryPredictionResponse is returned by the single-student prediction
// endpoint.
type SalaryPredictionResponse struct {
	Envelope
	Prediction SalaryPrediction `json:"prediction"`
	ModelType  string           `json:"model_type"`
	Source     string           `json:"source"`
}

// SchemaField describes one input field in the salary model's schema.
type SchemaField struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Required      bool     `json:"required"`
	AllowedValues []string `json:"allowed_values,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// SalaryInputSchemaResponse describes the expected prediction input, derived
// from the fitted feature engineer's encodings.
type SalaryInputSchemaResponse struct {
	Envelope
	Fields  []SchemaField  `json:"fields"`
	Example StudentProfile `json:"example"`
}

// SalaryFilters echoes the filters applied to a filtered prediction query.
type SalaryFilters struct {
	Pathway string   `json:"pathway,omitempty"`
	MinGPA  *float64 `json:"min_gpa,omitempty"`
	MaxGPA  *float64 `json:"max_gpa,omitempty"`
}

// FilteredSalaryResponse is returned by the filtered prediction endpoint:
// predictions for every student in the roster matching the filters.
type FilteredSalaryResponse struct {
	Envelope
	FiltersApplied SalaryFilters      `json:"filters_applied"`
	Predictions    []SalaryPrediction `json:"predictions"`
	TotalStudents  int                `json:"total_students"`
	TotalFiltered  int                `json:"total_filtered"`
	AverageSalary  float64            `json:"average_salary"`
	Source         string             `json:"source"`
}

// SemesterSalary is one point in the per-semester salary growth series.
type SemesterSalary struct {
	Semester     int     `json:"semester"`
	AvgSalary    float64 `json:"avg_salary"`
	StudentCount int     `json:"student_count"`
}

// SalaryGrowthResponse is the per-semester average predicted salary series.
type SalaryGrowthResponse struct {
	Envelope
	Growth   []SemesterSalary `json:"growth"`
	Currency string           `json:"currency"`
	Source   string           `json:"source"`
}
