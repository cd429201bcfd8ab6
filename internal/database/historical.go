// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/academitrend/academitrend/internal/metrics"
	"github.com/academitrend/academitrend/internal/models"
)

// GetEnrollmentRecords returns the raw historical enrollment rows, capped at
// maxRows to bound response size.
func (db *DB) GetEnrollmentRecords(ctx context.Context, path string, maxRows int) ([]models.EnrollmentRecord, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT university, course_name, year, enrollments, avg_start_sal, graduate_employment_rate
		FROM %s
		ORDER BY year, university, course_name
		LIMIT %d`, csvSource(path), maxRows)

	rows, err := db.query(ctx, "SELECT", "enrollments", query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	records := make([]models.EnrollmentRecord, 0)
	for rows.Next() {
		var rec models.EnrollmentRecord
		var sal, rate sql.NullFloat64
		if err := rows.Scan(&rec.University, &rec.CourseName, &rec.Year, &rec.Enrollments, &sal, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment record: %w", err)
		}
		if sal.Valid {
			rec.AvgStartSal = &sal.Float64
		}
		if rate.Valid {
			rec.GraduateEmploymentRate = &rate.Float64
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("enrollment record iteration failed: %w", err)
	}

	metrics.RecordDatasetRows("enrollments", len(records))
	return records, nil
}

// GetApplicationRecords returns raw application rows from one applications
// dataset, capped at maxRows.
func (db *DB) GetApplicationRecords(ctx context.Context, dataset, path string, maxRows int) ([]models.ApplicationRecord, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT university, course_name, district, year, applications, cutoff_mark
		FROM %s
		ORDER BY year, university, course_name
		LIMIT %d`, csvSource(path), maxRows)

	rows, err := db.query(ctx, "SELECT", dataset, query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	records := make([]models.ApplicationRecord, 0)
	for rows.Next() {
		var rec models.ApplicationRecord
		var district sql.NullString
		var cutoff sql.NullFloat64
		if err := rows.Scan(&rec.University, &rec.CourseName, &district, &rec.Year, &rec.Applications, &cutoff); err != nil {
			return nil, fmt.Errorf("failed to scan application record: %w", err)
		}
		if district.Valid {
			rec.District = &district.String
		}
		if cutoff.Valid {
			rec.CutoffMark = &cutoff.Float64
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("application record iteration failed: %w", err)
	}

	metrics.RecordDatasetRows(dataset, len(records))
	return records, nil
}

// GetEnrollmentsSummary aggregates the historical enrollments dataset.
func (db *DB) GetEnrollmentsSummary(ctx context.Context, path string) (*models.EnrollmentsSummary, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT university),
			COUNT(DISTINCT course_name),
			COALESCE(SUM(enrollments), 0),
			COUNT(DISTINCT year)
		FROM %s`, csvSource(path))

	var summary models.EnrollmentsSummary
	var yearCount int
	row := db.queryRow(ctx, "SELECT", "enrollments", query)
	if err := row.Scan(&summary.TotalRecords, &summary.UniqueUniversities, &summary.UniqueCourses,
		&summary.TotalEnrollments, &yearCount); err != nil {
		return nil, fmt.Errorf("failed to scan enrollments summary: %w", err)
	}

	years, err := db.distinctYears(ctx, "enrollments", path)
	if err != nil {
		return nil, err
	}
	summary.YearsCovered = years

	if yearCount > 0 {
		summary.AvgEnrollmentsPerYear = float64(summary.TotalEnrollments) / float64(yearCount)
	}

	return &summary, nil
}

// GetApplicationsSummary aggregates the application datasets that exist on
// disk. A missing file is skipped; both missing yields ErrDatasetNotFound.
func (db *DB) GetApplicationsSummary(ctx context.Context, paths []string) (*models.ApplicationsSummary, error) {
	var summary models.ApplicationsSummary
	yearSet := make(map[int]struct{})
	uniSet := make(map[string]struct{})
	courseSet := make(map[string]struct{})
	available := 0

	for i, path := range paths {
		dataset := fmt.Sprintf("applications_%d", i)
		if err := checkDataset(path); err != nil {
			continue
		}
		available++

		query := fmt.Sprintf(`
			SELECT university, course_name, year, applications
			FROM %s`, csvSource(path))

		rows, err := db.query(ctx, "SELECT", dataset, query)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			var uni, course string
			var year, apps int
			if err := rows.Scan(&uni, &course, &year, &apps); err != nil {
				closeRows(rows)
				return nil, fmt.Errorf("failed to scan applications row: %w", err)
			}
			summary.TotalRecords++
			summary.TotalApplications += apps
			yearSet[year] = struct{}{}
			uniSet[uni] = struct{}{}
			courseSet[course] = struct{}{}
		}
		if err := rows.Err(); err != nil {
			closeRows(rows)
			return nil, fmt.Errorf("applications iteration failed: %w", err)
		}
		closeRows(rows)
	}

	if available == 0 {
		return nil, fmt.Errorf("%w: no applications dataset available", ErrDatasetNotFound)
	}

	summary.UniqueUniversities = len(uniSet)
	summary.UniqueCourses = len(courseSet)
	summary.YearsCovered = sortedYears(yearSet)
	if len(yearSet) > 0 {
		summary.AvgApplicationsPerYear = float64(summary.TotalApplications) / float64(len(yearSet))
	}

	return &summary, nil
}

// GetTopHistoricalAggregates returns top-N universities and courses ranked
// by an integer-valued column of a historical dataset.
func (db *DB) GetTopHistoricalAggregates(ctx context.Context, dataset, path, valueCol string, topN int) (map[string]int, map[string]int, error) {
	if err := checkDataset(path); err != nil {
		return nil, nil, err
	}

	universities, err := db.sumIntByGroup(ctx, dataset, csvSource(path), "university", valueCol, topN)
	if err != nil {
		return nil, nil, err
	}

	courses, err := db.sumIntByGroup(ctx, dataset, csvSource(path), "course_name", valueCol, topN)
	if err != nil {
		return nil, nil, err
	}

	return universities, courses, nil
}

// GetTopApplicationAggregates returns top-N universities and courses ranked
// by total applications across the combined application datasets. The
// ranking is computed over one UNION ALL of every file present on disk so
// a group's total always covers all files. Missing files are skipped; both
// missing yields ErrDatasetNotFound.
func (db *DB) GetTopApplicationAggregates(ctx context.Context, paths []string, topN int) (map[string]int, map[string]int, error) {
	selects := make([]string, 0, len(paths))
	for _, path := range paths {
		if err := checkDataset(path); err != nil {
			continue
		}
		selects = append(selects, fmt.Sprintf(
			"SELECT university, course_name, applications FROM %s", csvSource(path)))
	}
	if len(selects) == 0 {
		return nil, nil, fmt.Errorf("%w: no applications dataset available", ErrDatasetNotFound)
	}

	source := "(" + join(selects, " UNION ALL ") + ")"

	universities, err := db.sumIntByGroup(ctx, "applications", source, "university", "applications", topN)
	if err != nil {
		return nil, nil, err
	}

	courses, err := db.sumIntByGroup(ctx, "applications", source, "course_name", "applications", topN)
	if err != nil {
		return nil, nil, err
	}

	return universities, courses, nil
}

// sumIntByGroup returns the top-N groups ranked by the summed integer column.
// source is a FROM-clause fragment, either a single csvSource or a
// parenthesized UNION ALL over several.
func (db *DB) sumIntByGroup(ctx context.Context, dataset, source, groupCol, valueCol string, topN int) (map[string]int, error) {
	query := fmt.Sprintf(`
		SELECT %s, SUM(%s) AS total
		FROM %s
		GROUP BY %s
		ORDER BY total DESC
		LIMIT %d`, groupCol, valueCol, source, groupCol, topN)

	rows, err := db.query(ctx, "SELECT", dataset, query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	result := make(map[string]int)
	for rows.Next() {
		var key string
		var total sql.NullInt64
		if err := rows.Scan(&key, &total); err != nil {
			return nil, fmt.Errorf("failed to scan %s aggregate: %w", groupCol, err)
		}
		result[key] = int(total.Int64)
	}
	return result, rows.Err()
}

// IsDatasetNotFound reports whether err indicates a missing dataset file.
func IsDatasetNotFound(err error) bool {
	return errors.Is(err, ErrDatasetNotFound)
}

func sortedYears(set map[int]struct{}) []int {
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
