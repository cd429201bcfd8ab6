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

// PathwayForecastsFilter narrows the pre-generated pathway forecasts dataset.
//
// Matching semantics:
//   - DegreeProgram: case-insensitive substring
//   - Pathway: case-insensitive substring
//   - Year: exact match
//   - Model: case-insensitive substring
type PathwayForecastsFilter struct {
	DegreeProgram string
	Pathway       string
	Year          *int
	Model         string
}

// buildPathwayWhereClause builds the WHERE clause and arguments for pathway
// forecast queries.
func buildPathwayWhereClause(filter PathwayForecastsFilter) (string, []interface{}) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}

	if filter.DegreeProgram != "" {
		whereClauses = append(whereClauses, "lower(degree_program) LIKE '%' || lower(?) || '%'")
		args = append(args, filter.DegreeProgram)
	}

	if filter.Pathway != "" {
		whereClauses = append(whereClauses, "lower(pathway) LIKE '%' || lower(?) || '%'")
		args = append(args, filter.Pathway)
	}

	if filter.Year != nil {
		whereClauses = append(whereClauses, "year = ?")
		args = append(args, *filter.Year)
	}

	if filter.Model != "" {
		whereClauses = append(whereClauses, "lower(model) LIKE '%' || lower(?) || '%'")
		args = append(args, filter.Model)
	}

	return join(whereClauses, " AND "), args
}

// GetPathwayForecasts returns the pre-generated forecast rows matching the
// filter, ordered by year, degree program, pathway.
func (db *DB) GetPathwayForecasts(ctx context.Context, path string, filter PathwayForecastsFilter) ([]models.PathwayForecast, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	whereClause, args := buildPathwayWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT year, degree_program, pathway, enrollment_pred, model
		FROM %s
		WHERE %s
		ORDER BY year, degree_program, pathway`,
		csvSource(path), whereClause)

	rows, err := db.query(ctx, "SELECT", "pathway_forecasts", query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	forecasts := make([]models.PathwayForecast, 0)
	for rows.Next() {
		var f models.PathwayForecast
		if err := rows.Scan(&f.Year, &f.DegreeProgram, &f.Pathway, &f.EnrollmentPred, &f.Model); err != nil {
			return nil, fmt.Errorf("failed to scan pathway forecast: %w", err)
		}
		forecasts = append(forecasts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pathway forecast iteration failed: %w", err)
	}

	metrics.RecordDatasetRows("pathway_forecasts", len(forecasts))
	return forecasts, nil
}

// GetPathwayTrend returns the historical enrollment trend rows, ordered by
// year, degree program, pathway.
func (db *DB) GetPathwayTrend(ctx context.Context, path string) ([]models.PathwayTrendRecord, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT year, degree_program, pathway, enrollments
		FROM %s
		ORDER BY year, degree_program, pathway`, csvSource(path))

	rows, err := db.query(ctx, "SELECT", "enrollment_trend", query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	records := make([]models.PathwayTrendRecord, 0)
	for rows.Next() {
		var rec models.PathwayTrendRecord
		if err := rows.Scan(&rec.Year, &rec.DegreeProgram, &rec.Pathway, &rec.Enrollments); err != nil {
			return nil, fmt.Errorf("failed to scan trend record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trend record iteration failed: %w", err)
	}

	metrics.RecordDatasetRows("enrollment_trend", len(records))
	return records, nil
}

// GetPathwayTrendStats aggregates the enrollment trend dataset.
func (db *DB) GetPathwayTrendStats(ctx context.Context, path string) (*models.PathwayDataStats, error) {
	if err := checkDataset(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT degree_program),
			COUNT(DISTINCT pathway),
			COALESCE(SUM(enrollments), 0)
		FROM %s`, csvSource(path))

	var stats models.PathwayDataStats
	row := db.queryRow(ctx, "SELECT", "enrollment_trend", query)
	if err := row.Scan(&stats.TotalRecords, &stats.UniqueDegreePrograms, &stats.UniquePathways, &stats.TotalEnrollments); err != nil {
		return nil, fmt.Errorf("failed to scan trend stats: %w", err)
	}

	years, err := db.distinctYears(ctx, "enrollment_trend", path)
	if err != nil {
		return nil, err
	}
	stats.YearsCovered = years

	return &stats, nil
}

// PathwaySeries is one degree-program/pathway historical series used as
// forecasting input.
type PathwaySeries struct {
	DegreeProgram string
	Pathway       string
	Years         []int
	Enrollments   []float64
}

// GetPathwaySeries groups the enrollment trend into per-pathway time series,
// each ordered by year.
func (db *DB) GetPathwaySeries(ctx context.Context, path string) ([]PathwaySeries, error) {
	records, err := db.GetPathwayTrend(ctx, path)
	if err != nil {
		return nil, err
	}

	type key struct{ program, pathway string }
	index := make(map[key]int)
	series := make([]PathwaySeries, 0)

	for _, rec := range records {
		k := key{rec.DegreeProgram, rec.Pathway}
		i, ok := index[k]
		if !ok {
			i = len(series)
			index[k] = i
			series = append(series, PathwaySeries{
				DegreeProgram: rec.DegreeProgram,
				Pathway:       rec.Pathway,
			})
		}
		series[i].Years = append(series[i].Years, rec.Year)
		series[i].Enrollments = append(series[i].Enrollments, float64(rec.Enrollments))
	}

	return series, nil
}
