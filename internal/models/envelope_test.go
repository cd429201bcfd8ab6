// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package models

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestEnvelopeConstructors(t *testing.T) {
	ok := OK("loaded 42 rows")
	if ok.Status != StatusSuccess || ok.Message != "loaded 42 rows" {
		t.Errorf("OK() = %+v", ok)
	}

	e := Error("dataset not found")
	if e.Status != StatusError || e.Message != "dataset not found" {
		t.Errorf("Error() = %+v", e)
	}
}

func TestEnvelopeFlattensIntoResponse(t *testing.T) {
	resp := CoursePredictionsResponse{
		Envelope:    OK("predictions loaded"),
		Predictions: []CoursePrediction{},
		Source:      "predictions.csv",
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"status":"success"`) {
		t.Errorf("expected flattened status field, got %s", out)
	}
	if strings.Contains(out, `"envelope"`) || strings.Contains(out, `"Envelope"`) {
		t.Errorf("envelope must not nest, got %s", out)
	}
	if !strings.Contains(out, `"predictions":[]`) {
		t.Errorf("empty predictions must marshal as [], got %s", out)
	}
}

func TestCourseFiltersEmpty(t *testing.T) {
	year := 2027
	tests := []struct {
		name    string
		filters CourseFilters
		empty   bool
	}{
		{"no filters", CourseFilters{}, true},
		{"year only", CourseFilters{Year: &year}, false},
		{"university only", CourseFilters{University: "colombo"}, false},
		{"course only", CourseFilters{Course: "Computer Science"}, false},
		{"model only", CourseFilters{Model: "xgboost"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, expected %v", got, tt.empty)
			}
		})
	}
}

func TestPathwayFiltersEmpty(t *testing.T) {
	year := 2026
	if !(PathwayFilters{}).Empty() {
		t.Error("zero PathwayFilters must be empty")
	}
	if (PathwayFilters{Pathway: "Data Science"}).Empty() {
		t.Error("pathway filter must not be empty")
	}
	if (PathwayFilters{Year: &year}).Empty() {
		t.Error("year filter must not be empty")
	}
}
