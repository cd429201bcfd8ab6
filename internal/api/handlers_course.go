// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package api

import (
	"context"
	"net/http"

	"github.com/academitrend/academitrend/internal/database"
	"github.com/academitrend/academitrend/internal/models"
)

// CourseEnrollmentPrediction returns the full pre-generated course
// prediction dataset.
func (h *Handler) CourseEnrollmentPrediction(w http.ResponseWriter, r *http.Request) {
	path := h.cfg.Data.CoursePredictions

	predictions, err := h.db.GetCoursePredictions(r.Context(), path, database.CoursePredictionsFilter{})
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	stats, err := h.db.GetCoursePredictionStats(r.Context(), path)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.CoursePredictionsResponse{
		Envelope:         models.OK("course enrollment predictions loaded"),
		ViewType:         "detailed_predictions",
		Description:      "Pre-generated enrollment and application predictions per university and course",
		Predictions:      predictions,
		TotalPredictions: len(predictions),
		ModelsUsed:       stats.ModelsUsed,
		YearsPredicted:   stats.YearsPredicted,
		Source:           datasetName(path),
	})
}

// CourseEnrollmentPredictionYears returns predictions restricted to the last
// N predicted years, N taken from the request body.
func (h *Handler) CourseEnrollmentPredictionYears(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeForecastYears(r, h.cfg.Forecast.CourseDefaultYears)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	path := h.cfg.Data.CoursePredictions
	predictions, err := h.db.GetCoursePredictions(r.Context(), path, database.CoursePredictionsFilter{
		LastYears: req.ForecastYears,
	})
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.CoursePredictionsResponse{
		Envelope:         models.OK("course enrollment predictions loaded"),
		ViewType:         "detailed_predictions",
		ForecastYears:    req.ForecastYears,
		Predictions:      predictions,
		TotalPredictions: len(predictions),
		ModelsUsed:       predictionModels(predictions),
		YearsPredicted:   predictionYears(predictions),
		Source:           datasetName(path),
	})
}

// LoadCoursePredictions returns the summary statistics view over the course
// prediction dataset. The aggregate is cached briefly.
func (h *Handler) LoadCoursePredictions(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "course-summary"
	if cached, ok := h.cache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	response, err := h.buildCourseSummary(r.Context())
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	h.cache.Set(cacheKey, *response)
	respondJSON(w, http.StatusOK, *response)
}

func (h *Handler) buildCourseSummary(ctx context.Context) (*models.CourseSummaryResponse, error) {
	path := h.cfg.Data.CoursePredictions

	stats, err := h.db.GetCoursePredictionStats(ctx, path)
	if err != nil {
		return nil, err
	}

	topUniversities, topCourses, err := h.db.GetTopCourseAggregates(ctx, path, h.cfg.API.TopN)
	if err != nil {
		return nil, err
	}

	performance, err := h.db.GetModelPerformance(ctx, path)
	if err != nil {
		return nil, err
	}

	return &models.CourseSummaryResponse{
		Envelope:                    models.OK("course prediction summary loaded"),
		ViewType:                    "summary_statistics",
		Description:                 "Aggregate view over the pre-generated course prediction dataset",
		SummaryStatistics:           *stats,
		TopUniversitiesByEnrollment: topUniversities,
		TopCoursesByEnrollment:      topCourses,
		ModelPerformanceSummary:     performance,
		Source:                      datasetName(path),
	}, nil
}

// SimpleCourseEnrollmentPrediction returns predictions filtered by the
// year, university, course, and model query parameters.
func (h *Handler) SimpleCourseEnrollmentPrediction(w http.ResponseWriter, r *http.Request) {
	year, err := getIntParam(r, "year")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	filter := database.CoursePredictionsFilter{
		Year:       year,
		University: r.URL.Query().Get("university"),
		Course:     r.URL.Query().Get("course"),
		Model:      r.URL.Query().Get("model"),
	}

	h.respondFilteredCourse(w, r, filter, 0)
}

// FilteredCoursePredictionsYears combines the query filters with a
// last-N-years window, both taken from the request body.
func (h *Handler) FilteredCoursePredictionsYears(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeForecastYears(r, h.cfg.Forecast.CourseDefaultYears)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	filter := database.CoursePredictionsFilter{
		Year:       req.Year,
		University: req.University,
		Course:     req.Course,
		Model:      req.Model,
		LastYears:  req.ForecastYears,
	}

	h.respondFilteredCourse(w, r, filter, req.ForecastYears)
}

func (h *Handler) respondFilteredCourse(w http.ResponseWriter, r *http.Request, filter database.CoursePredictionsFilter, forecastYears int) {
	path := h.cfg.Data.CoursePredictions

	predictions, err := h.db.GetCoursePredictions(r.Context(), path, filter)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	filters := models.CourseFilters{
		Year:       filter.Year,
		University: filter.University,
		Course:     filter.Course,
		Model:      filter.Model,
	}

	respondJSON(w, http.StatusOK, models.CoursePredictionsResponse{
		Envelope:             models.OK("filtered course enrollment predictions loaded"),
		ViewType:             "filtered_predictions",
		ForecastYears:        forecastYears,
		FiltersApplied:       &filters,
		Predictions:          predictions,
		TotalFilteredRecords: len(predictions),
		Source:               datasetName(path),
	})
}

// CourseHistoricalData returns the raw historical enrollments and
// applications datasets with aggregate statistics and top-N rankings.
func (h *Handler) CourseHistoricalData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	maxRows := h.cfg.API.MaxHistoricalRows
	topN := h.cfg.API.TopN

	enrollPath := h.cfg.Data.Enrollments
	appPaths := []string{h.cfg.Data.Applications20162023, h.cfg.Data.Applications20052015}

	enrollments, err := h.db.GetEnrollmentRecords(ctx, enrollPath, maxRows)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	enrollSummary, err := h.db.GetEnrollmentsSummary(ctx, enrollPath)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	topUniByEnroll, topCourseByEnroll, err := h.db.GetTopHistoricalAggregates(ctx, "enrollments", enrollPath, "enrollments", topN)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	// Missing application files degrade to an empty applications block;
	// only a missing enrollments dataset is an error.
	appSummary, err := h.db.GetApplicationsSummary(ctx, appPaths)
	if database.IsDatasetNotFound(err) {
		appSummary = &models.ApplicationsSummary{YearsCovered: []int{}}
	} else if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	// One combined ranking across every application file present, so a
	// university's total covers both datasets.
	topUniByApp, topCourseByApp, err := h.db.GetTopApplicationAggregates(ctx, appPaths, topN)
	if database.IsDatasetNotFound(err) {
		topUniByApp, topCourseByApp = map[string]int{}, map[string]int{}
	} else if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	applications := make([]models.ApplicationRecord, 0)
	files := models.FilesLoaded{Enrollments: strPtr(datasetName(enrollPath))}

	for i, path := range appPaths {
		records, err := h.db.GetApplicationRecords(ctx, "applications", path, maxRows)
		if database.IsDatasetNotFound(err) {
			continue
		}
		if err != nil {
			h.respondMappedError(w, r, err)
			return
		}
		applications = append(applications, records...)

		name := datasetName(path)
		if i == 0 {
			files.Applications20162023 = &name
		} else {
			files.Applications20052015 = &name
		}
	}

	respondJSON(w, http.StatusOK, models.CourseHistoricalResponse{
		Envelope:   models.OK("historical course data loaded"),
		System:     "course_enrollment_prediction",
		DataSource: "historical CSV datasets",
		SummaryStatistics: models.HistoricalSummary{
			Enrollments:  *enrollSummary,
			Applications: *appSummary,
		},
		TopUniversitiesByEnrollments:  topUniByEnroll,
		TopCoursesByEnrollments:       topCourseByEnroll,
		TopUniversitiesByApplications: topUniByApp,
		TopCoursesByApplications:      topCourseByApp,
		EnrollmentsData:               enrollments,
		ApplicationsData:              applications,
		FilesLoaded:                   files,
	})
}

// predictionYears collects the distinct years of a prediction set in
// ascending order. Input is already sorted by year.
func predictionYears(predictions []models.CoursePrediction) []int {
	years := make([]int, 0)
	for _, p := range predictions {
		if len(years) == 0 || years[len(years)-1] != p.Year {
			years = append(years, p.Year)
		}
	}
	return years
}

// predictionModels collects the distinct model names of a prediction set in
// first-seen order.
func predictionModels(predictions []models.CoursePrediction) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, p := range predictions {
		if _, ok := seen[p.Model]; ok {
			continue
		}
		seen[p.Model] = struct{}{}
		names = append(names, p.Model)
	}
	return names
}

func strPtr(s string) *string { return &s }
