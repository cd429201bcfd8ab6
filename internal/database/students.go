// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package database

import (
	"context"
	"fmt"

	"github.com/academitrend/academitrend/internal/metrics"
	"github.com/academitrend/academitrend/internal/models"
)

// GetStudentRoster returns all student profiles from the roster dataset,
// used as the batch input for filtered salary predictions.
func (db *DB) GetStudentRoster(ctx context.Context, path string) ([]models.StudentProfile, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT student_id, degree_program, pathway, gpa, semester,
		       internships_completed, projects_completed, certifications_earned
		FROM %s
		ORDER BY student_id`, csvSource(path))

	rows, err := db.query(ctx, "SELECT", "student_roster", query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	roster := make([]models.StudentProfile, 0)
	for rows.Next() {
		var s models.StudentProfile
		if err := rows.Scan(&s.StudentID, &s.DegreeProgram, &s.Pathway, &s.GPA, &s.Semester,
			&s.InternshipsCompleted, &s.ProjectsCompleted, &s.CertificationsEarned); err != nil {
			return nil, fmt.Errorf("failed to scan student profile: %w", err)
		}
		roster = append(roster, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("student roster iteration failed: %w", err)
	}

	metrics.RecordDatasetRows("student_roster", len(roster))
	return roster, nil
}
