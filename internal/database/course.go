// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/academitrend/academitrend/internal/metrics"
	"github.com/academitrend/academitrend/internal/models"
)

// CoursePredictionsFilter narrows the course predictions dataset.
//
// Matching semantics:
//   - Year: exact match
//   - University: case-insensitive substring
//   - Course: case-insensitive exact match
//   - Model: case-insensitive substring
//   - LastYears: keep only the trailing N years of the dataset
type CoursePredictionsFilter struct {
	Year       *int
	University string
	Course     string
	Model      string
	LastYears  int
}

// buildCourseWhereClause builds the WHERE clause and arguments for course
// prediction queries. Returns "1=1" when no filter dimension is set so the
// clause can always be interpolated.
func buildCourseWhereClause(filter CoursePredictionsFilter) (string, []interface{}) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}

	if filter.Year != nil {
		whereClauses = append(whereClauses, "year = ?")
		args = append(args, *filter.Year)
	}

	if filter.University != "" {
		whereClauses = append(whereClauses, "lower(university) LIKE '%' || lower(?) || '%'")
		args = append(args, filter.University)
	}

	if filter.Course != "" {
		whereClauses = append(whereClauses, "lower(course_name) = lower(?)")
		args = append(args, filter.Course)
	}

	if filter.Model != "" {
		whereClauses = append(whereClauses, "lower(model) LIKE '%' || lower(?) || '%'")
		args = append(args, filter.Model)
	}

	return join(whereClauses, " AND "), args
}

// GetCoursePredictions returns the prediction rows matching the filter,
// ordered by year, university, course.
func (db *DB) GetCoursePredictions(ctx context.Context, path string, filter CoursePredictionsFilter) ([]models.CoursePrediction, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	whereClause, args := buildCourseWhereClause(filter)

	if filter.LastYears > 0 {
		maxYear, err := db.maxYear(ctx, "course_predictions", path)
		if err != nil {
			return nil, err
		}
		whereClause += " AND year >= ?"
		args = append(args, maxYear-filter.LastYears+1)
	}

	query := fmt.Sprintf(`
		SELECT year, university, course_name, enrollments_pred, applications_pred, model
		FROM %s
		WHERE %s
		ORDER BY year, university, course_name`,
		csvSource(path), whereClause)

	rows, err := db.query(ctx, "SELECT", "course_predictions", query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	predictions := make([]models.CoursePrediction, 0)
	for rows.Next() {
		var p models.CoursePrediction
		if err := rows.Scan(&p.Year, &p.University, &p.CourseName, &p.EnrollmentsPred, &p.ApplicationsPred, &p.Model); err != nil {
			return nil, fmt.Errorf("failed to scan course prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("course prediction iteration failed: %w", err)
	}

	metrics.RecordDatasetRows("course_predictions", len(predictions))
	return predictions, nil
}

// GetCoursePredictionStats computes the summary statistics block over the
// full predictions dataset.
func (db *DB) GetCoursePredictionStats(ctx context.Context, path string) (*models.CourseSummaryStats, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT university),
			COUNT(DISTINCT course_name),
			AVG(enrollments_pred),
			AVG(applications_pred),
			MAX(enrollments_pred),
			MIN(enrollments_pred)
		FROM %s`, csvSource(path))

	var stats models.CourseSummaryStats
	var avgEnroll, avgApp, maxEnroll, minEnroll sql.NullFloat64
	row := db.queryRow(ctx, "SELECT", "course_predictions", query)
	if err := row.Scan(&stats.TotalPredictions, &stats.UniqueUniversities, &stats.UniqueCourses,
		&avgEnroll, &avgApp, &maxEnroll, &minEnroll); err != nil {
		return nil, fmt.Errorf("failed to scan prediction stats: %w", err)
	}
	stats.AvgEnrollmentPred = avgEnroll.Float64
	stats.AvgApplicationPred = avgApp.Float64
	stats.MaxEnrollmentPred = maxEnroll.Float64
	stats.MinEnrollmentPred = minEnroll.Float64

	modelNames, err := db.distinctStrings(ctx, "course_predictions", path, "model")
	if err != nil {
		return nil, err
	}
	stats.ModelsUsed = modelNames

	years, err := db.distinctYears(ctx, "course_predictions", path)
	if err != nil {
		return nil, err
	}
	stats.YearsPredicted = years

	return &stats, nil
}

// GetTopCourseAggregates returns the top-N universities and courses ranked
// by mean predicted enrollment.
func (db *DB) GetTopCourseAggregates(ctx context.Context, path string, topN int) (map[string]float64, map[string]float64, error) {
	if err := checkDataset(path); err != nil {
		return nil, nil, err
	}

	universities, err := db.avgByGroup(ctx, "course_predictions", path, "university", "enrollments_pred", topN)
	if err != nil {
		return nil, nil, err
	}

	courses, err := db.avgByGroup(ctx, "course_predictions", path, "course_name", "enrollments_pred", topN)
	if err != nil {
		return nil, nil, err
	}

	return universities, courses, nil
}

// GetModelPerformance returns per-model mean predicted enrollment and
// prediction counts.
func (db *DB) GetModelPerformance(ctx context.Context, path string) (map[string]models.ModelPerformance, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT model, AVG(enrollments_pred), COUNT(*)
		FROM %s
		GROUP BY model
		ORDER BY model`, csvSource(path))

	rows, err := db.query(ctx, "SELECT", "course_predictions", query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	performance := make(map[string]models.ModelPerformance)
	for rows.Next() {
		var model string
		var mean sql.NullFloat64
		var count int
		if err := rows.Scan(&model, &mean, &count); err != nil {
			return nil, fmt.Errorf("failed to scan model performance: %w", err)
		}
		performance[model] = models.ModelPerformance{
			MeanEnrollment:  mean.Float64,
			PredictionCount: count,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("model performance iteration failed: %w", err)
	}

	return performance, nil
}

// maxYear returns the maximum year present in a dataset.
func (db *DB) maxYear(ctx context.Context, dataset, path string) (int, error) {
	query := fmt.Sprintf("SELECT MAX(year) FROM %s", csvSource(path))

	var maxYear sql.NullInt64
	row := db.queryRow(ctx, "SELECT", dataset, query)
	if err := row.Scan(&maxYear); err != nil {
		return 0, fmt.Errorf("failed to determine max year for %s: %w", dataset, err)
	}
	if !maxYear.Valid {
		return 0, fmt.Errorf("dataset %s has no year values", dataset)
	}
	return int(maxYear.Int64), nil
}

// distinctStrings returns the sorted distinct values of a string column.
func (db *DB) distinctStrings(ctx context.Context, dataset, path, column string) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s ORDER BY %s", column, csvSource(path), column)

	rows, err := db.query(ctx, "SELECT", dataset, query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan distinct %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// distinctYears returns the sorted distinct years of a dataset.
func (db *DB) distinctYears(ctx context.Context, dataset, path string) ([]int, error) {
	query := fmt.Sprintf("SELECT DISTINCT year FROM %s ORDER BY year", csvSource(path))

	rows, err := db.query(ctx, "SELECT", dataset, query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	years := make([]int, 0)
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// avgByGroup returns the top-N groups ranked by the mean of the value column.
func (db *DB) avgByGroup(ctx context.Context, dataset, path, groupCol, valueCol string, topN int) (map[string]float64, error) {
	query := fmt.Sprintf(`
		SELECT %s, AVG(%s) AS mean_value
		FROM %s
		GROUP BY %s
		ORDER BY mean_value DESC
		LIMIT %d`, groupCol, valueCol, csvSource(path), groupCol, topN)

	rows, err := db.query(ctx, "SELECT", dataset, query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	result := make(map[string]float64)
	for rows.Next() {
		var key string
		var mean sql.NullFloat64
		if err := rows.Scan(&key, &mean); err != nil {
			return nil, fmt.Errorf("failed to scan %s aggregate: %w", groupCol, err)
		}
		result[key] = mean.Float64
	}
	return result, rows.Err()
}

func closeRows(rows *sql.Rows) {
	_ = rows.Close()
}
