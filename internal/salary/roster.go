// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package salary

import (
	"sort"
	"strings"

	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/models"
)

// RosterFilter narrows the student roster before batch prediction.
// Pathway matches case-insensitively as a substring; GPA bounds are
// inclusive.
type RosterFilter struct {
	Pathway string
	MinGPA  *float64
	MaxGPA  *float64
}

// matches reports whether a student passes the filter.
func (f RosterFilter) matches(s models.StudentProfile) bool {
	if f.Pathway != "" && !strings.Contains(strings.ToLower(s.Pathway), strings.ToLower(f.Pathway)) {
		return false
	}
	if f.MinGPA != nil && s.GPA < *f.MinGPA {
		return false
	}
	if f.MaxGPA != nil && s.GPA > *f.MaxGPA {
		return false
	}
	return true
}

// FilterPredictions predicts salaries for every roster student matching the
// filter. Students the model cannot encode (unknown pathway values in an
// older roster) are skipped with a warning rather than failing the batch.
func (p *Predictor) FilterPredictions(roster []models.StudentProfile, filter RosterFilter) ([]models.SalaryPrediction, int, error) {
	if !p.Loaded() {
		return nil, 0, ErrModelNotLoaded
	}

	predictions := make([]models.SalaryPrediction, 0)
	matched := 0

	for _, student := range roster {
		if !filter.matches(student) {
			continue
		}
		matched++

		prediction, err := p.Predict(student)
		if err != nil {
			logging.Warn().
				Err(err).
				Str("student_id", student.StudentID).
				Msg("skipping student the model cannot encode")
			continue
		}
		predictions = append(predictions, *prediction)
	}

	return predictions, matched, nil
}

// AverageSalary returns the mean predicted salary of a batch, or 0 for an
// empty batch.
func AverageSalary(predictions []models.SalaryPrediction) float64 {
	if len(predictions) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range predictions {
		total += p.PredictedSalary
	}
	return total / float64(len(predictions))
}

// Growth computes the average predicted salary per semester cohort across
// the whole roster.
func (p *Predictor) Growth(roster []models.StudentProfile) ([]models.SemesterSalary, error) {
	if !p.Loaded() {
		return nil, ErrModelNotLoaded
	}

	totals := make(map[int]float64)
	counts := make(map[int]int)

	for _, student := range roster {
		prediction, err := p.Predict(student)
		if err != nil {
			logging.Warn().
				Err(err).
				Str("student_id", student.StudentID).
				Msg("skipping student the model cannot encode")
			continue
		}
		totals[student.Semester] += prediction.PredictedSalary
		counts[student.Semester]++
	}

	semesters := make([]int, 0, len(totals))
	for semester := range totals {
		semesters = append(semesters, semester)
	}
	sort.Ints(semesters)

	growth := make([]models.SemesterSalary, 0, len(semesters))
	for _, semester := range semesters {
		growth = append(growth, models.SemesterSalary{
			Semester:     semester,
			AvgSalary:    totals[semester] / float64(counts[semester]),
			StudentCount: counts[semester],
		})
	}

	return growth, nil
}
