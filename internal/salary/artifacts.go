// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package salary predicts graduate starting salaries from fitted model
// artifacts: a feature engineer (categorical encodings and numeric scaling)
// and a linear regression model, both serialized as JSON.
package salary

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// FeatureEngineer holds the fitted input transformation: one-hot encodings
// for categorical fields and standardization parameters for numeric fields.
// FeatureOrder fixes the column order of the produced feature vector.
type FeatureEngineer struct {
	Categorical  map[string][]string     `json:"categorical"`
	Numeric      map[string]NumericScale `json:"numeric"`
	FeatureOrder []string                `json:"feature_order"`
}

// NumericScale standardizes one numeric input: (value - Mean) / Std.
type NumericScale struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Model holds the fitted regression: one coefficient per feature vector
// column, in FeatureOrder order.
type Model struct {
	ModelType    string    `json:"model_type"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Currency     string    `json:"currency"`
}

// loadFeatureEngineer reads and validates a feature engineer artifact.
func loadFeatureEngineer(path string) (*FeatureEngineer, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read feature engineer artifact: %w", err)
	}

	var fe FeatureEngineer
	if err := json.Unmarshal(data, &fe); err != nil {
		return nil, fmt.Errorf("failed to parse feature engineer artifact: %w", err)
	}

	if len(fe.FeatureOrder) == 0 {
		return nil, fmt.Errorf("feature engineer artifact has empty feature_order")
	}
	for _, name := range fe.FeatureOrder {
		if _, ok := fe.Categorical[name]; ok {
			continue
		}
		if _, ok := fe.Numeric[name]; ok {
			continue
		}
		return nil, fmt.Errorf("feature %q in feature_order has no encoding", name)
	}

	return &fe, nil
}

// loadModel reads and validates a trained model artifact against the
// feature engineer's expanded dimension.
func loadModel(path string, fe *FeatureEngineer) (*Model, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read trained model artifact: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse trained model artifact: %w", err)
	}

	expected := fe.vectorSize()
	if len(m.Coefficients) != expected {
		return nil, fmt.Errorf("model has %d coefficients, feature engineer produces %d features",
			len(m.Coefficients), expected)
	}
	if m.Currency == "" {
		m.Currency = "LKR"
	}

	return &m, nil
}

// vectorSize returns the length of the feature vector the engineer produces:
// one column per category value plus one per numeric field.
func (fe *FeatureEngineer) vectorSize() int {
	size := 0
	for _, name := range fe.FeatureOrder {
		if values, ok := fe.Categorical[name]; ok {
			size += len(values)
			continue
		}
		size++
	}
	return size
}
