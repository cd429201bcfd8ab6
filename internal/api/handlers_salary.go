// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/academitrend/academitrend/internal/models"
	"github.com/academitrend/academitrend/internal/salary"
	"github.com/academitrend/academitrend/internal/validation"
)

// JobSalaryPrediction predicts the starting salary for one student profile.
func (h *Handler) JobSalaryPrediction(w http.ResponseWriter, r *http.Request) {
	if !h.predictor.Loaded() {
		h.respondMappedError(w, r, salary.ErrModelNotLoaded)
		return
	}

	var profile models.StudentProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&profile); verr != nil {
		respondError(w, r, http.StatusBadRequest, verr.Error(), verr)
		return
	}

	prediction, err := h.predictor.Predict(profile)
	if err != nil {
		if errors.Is(err, salary.ErrModelNotLoaded) {
			h.respondMappedError(w, r, err)
			return
		}
		// Unknown category values are client errors.
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	respondJSON(w, http.StatusOK, models.SalaryPredictionResponse{
		Envelope:   models.OK("salary prediction computed"),
		Prediction: *prediction,
		ModelType:  h.predictor.ModelType(),
		Source:     "fitted_salary_model",
	})
}

// JobSalaryInputSchema describes the expected prediction input, derived from
// the fitted feature engineer.
func (h *Handler) JobSalaryInputSchema(w http.ResponseWriter, r *http.Request) {
	fields, err := h.predictor.InputSchema()
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.SalaryInputSchemaResponse{
		Envelope: models.OK("salary prediction input schema"),
		Fields:   fields,
		Example:  h.predictor.ExampleProfile(),
	})
}

// FilteredJobSalaryPredictions predicts salaries for every roster student
// matching the pathway and GPA query filters.
func (h *Handler) FilteredJobSalaryPredictions(w http.ResponseWriter, r *http.Request) {
	if !h.predictor.Loaded() {
		h.respondMappedError(w, r, salary.ErrModelNotLoaded)
		return
	}

	minGPA, err := getFloatParam(r, "min_gpa")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	maxGPA, err := getFloatParam(r, "max_gpa")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	roster, err := h.db.GetStudentRoster(r.Context(), h.cfg.Data.StudentRoster)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	filter := salary.RosterFilter{
		Pathway: r.URL.Query().Get("pathway"),
		MinGPA:  minGPA,
		MaxGPA:  maxGPA,
	}

	predictions, matched, err := h.predictor.FilterPredictions(roster, filter)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.FilteredSalaryResponse{
		Envelope: models.OK("filtered salary predictions computed"),
		FiltersApplied: models.SalaryFilters{
			Pathway: filter.Pathway,
			MinGPA:  filter.MinGPA,
			MaxGPA:  filter.MaxGPA,
		},
		Predictions:   predictions,
		TotalStudents: len(roster),
		TotalFiltered: matched,
		AverageSalary: salary.AverageSalary(predictions),
		Source:        datasetName(h.cfg.Data.StudentRoster),
	})
}

// JobSalaryGrowth returns the average predicted salary per semester cohort
// over the whole student roster.
func (h *Handler) JobSalaryGrowth(w http.ResponseWriter, r *http.Request) {
	if !h.predictor.Loaded() {
		h.respondMappedError(w, r, salary.ErrModelNotLoaded)
		return
	}

	roster, err := h.db.GetStudentRoster(r.Context(), h.cfg.Data.StudentRoster)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	growth, err := h.predictor.Growth(roster)
	if err != nil {
		h.respondMappedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.SalaryGrowthResponse{
		Envelope: models.OK("salary growth computed"),
		Growth:   growth,
		Currency: h.predictor.Currency(),
		Source:   datasetName(h.cfg.Data.StudentRoster),
	})
}
