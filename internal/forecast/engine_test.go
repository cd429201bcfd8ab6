// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package forecast

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/academitrend/academitrend/internal/database"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
}

func TestRegistryScan(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "cs_data_science.json", `{
		"model": "holt",
		"degree_program": "Computer Science",
		"pathway": "Data Science",
		"last_year": 2024,
		"params": {"level": 80.0, "trend": 5.5, "alpha": 0.5, "beta": 0.3}
	}`)
	writeArtifact(t, dir, "broken.json", `{not json`)
	writeArtifact(t, dir, "notes.txt", `ignored`)

	r := NewRegistry(dir)

	if got := r.LoadableCount(); got != 1 {
		t.Errorf("LoadableCount = %d, expected 1", got)
	}

	inventory := r.Inventory()
	if len(inventory) != 2 {
		t.Fatalf("Inventory len = %d, expected 2 (loadable + broken)", len(inventory))
	}
	// Sorted by name: broken.json first
	if inventory[0].Loadable {
		t.Error("broken.json must be marked unloadable")
	}
	if !inventory[1].Loadable || inventory[1].Model != "holt" {
		t.Errorf("unexpected inventory entry: %+v", inventory[1])
	}

	if a := r.Lookup("computer science", "DATA SCIENCE"); a == nil {
		t.Error("Lookup must be case-insensitive")
	}
	if a := r.Lookup("Business", "Finance"); a != nil {
		t.Errorf("Lookup for absent pathway = %+v, expected nil", a)
	}
}

func TestRegistryMissingDir(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "absent"))
	if got := r.LoadableCount(); got != 0 {
		t.Errorf("LoadableCount = %d, expected 0", got)
	}
	if inv := r.Inventory(); len(inv) != 0 {
		t.Errorf("Inventory = %v, expected empty", inv)
	}
}

func TestRegistryRejectsInvalidArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "no_target.json", `{"model": "holt", "last_year": 2024}`)
	writeArtifact(t, dir, "bad_model.json", `{
		"model": "arima",
		"degree_program": "Business",
		"pathway": "Finance",
		"last_year": 2024
	}`)

	r := NewRegistry(dir)
	if got := r.LoadableCount(); got != 0 {
		t.Errorf("LoadableCount = %d, expected 0", got)
	}
}

func TestEngineRunWithArtifact(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "cs_data_science.json", `{
		"model": "holt",
		"degree_program": "Computer Science",
		"pathway": "Data Science",
		"last_year": 2024,
		"params": {"level": 80.0, "trend": 5.0}
	}`)

	engine := NewEngine(NewRegistry(dir), 0)
	series := []database.PathwaySeries{
		{
			DegreeProgram: "Computer Science",
			Pathway:       "Data Science",
			Years:         []int{2022, 2023, 2024},
			Enrollments:   []float64{60, 68, 75},
		},
	}

	result, err := engine.Run(context.Background(), series, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Forecasts) != 3 {
		t.Fatalf("forecast rows = %d, expected 3", len(result.Forecasts))
	}
	// Holt projection: level + h*trend
	if got := result.Forecasts[0].EnrollmentPred; got != 85.0 {
		t.Errorf("first forecast = %f, expected 85.0", got)
	}
	if got := result.Forecasts[2].EnrollmentPred; got != 95.0 {
		t.Errorf("third forecast = %f, expected 95.0", got)
	}
	if result.Forecasts[0].Year != 2025 || result.Forecasts[2].Year != 2027 {
		t.Errorf("forecast years = %d..%d, expected 2025..2027",
			result.Forecasts[0].Year, result.Forecasts[2].Year)
	}
	if len(result.ModelsUsed) != 1 || result.ModelsUsed[0] != ModelHolt {
		t.Errorf("ModelsUsed = %v", result.ModelsUsed)
	}
}

func TestEngineRunLinearFallback(t *testing.T) {
	engine := NewEngine(NewRegistry(t.TempDir()), 0)
	// Perfectly linear series: 10 per year
	series := []database.PathwaySeries{
		{
			DegreeProgram: "Business",
			Pathway:       "Finance",
			Years:         []int{2021, 2022, 2023, 2024},
			Enrollments:   []float64{50, 60, 70, 80},
		},
	}

	result, err := engine.Run(context.Background(), series, 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Forecasts) != 2 {
		t.Fatalf("forecast rows = %d, expected 2", len(result.Forecasts))
	}
	if math.Abs(result.Forecasts[0].EnrollmentPred-90) > 1e-6 {
		t.Errorf("2025 forecast = %f, expected 90", result.Forecasts[0].EnrollmentPred)
	}
	if math.Abs(result.Forecasts[1].EnrollmentPred-100) > 1e-6 {
		t.Errorf("2026 forecast = %f, expected 100", result.Forecasts[1].EnrollmentPred)
	}
	if result.Forecasts[0].Model != ModelLinearTrend {
		t.Errorf("model = %q, expected %q", result.Forecasts[0].Model, ModelLinearTrend)
	}
}

func TestEngineSkipsShortSeries(t *testing.T) {
	engine := NewEngine(NewRegistry(t.TempDir()), 0)
	series := []database.PathwaySeries{
		{DegreeProgram: "A", Pathway: "B", Years: []int{2024}, Enrollments: []float64{10}},
		{DegreeProgram: "C", Pathway: "D", Years: []int{2023, 2024}, Enrollments: []float64{10, 12}},
	}

	result, err := engine.Run(context.Background(), series, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Forecasts) != 1 {
		t.Errorf("forecast rows = %d, expected 1 (short series skipped)", len(result.Forecasts))
	}
}

func TestEngineAllSeriesUnusable(t *testing.T) {
	engine := NewEngine(NewRegistry(t.TempDir()), 0)
	series := []database.PathwaySeries{
		{DegreeProgram: "A", Pathway: "B", Years: []int{2024}, Enrollments: []float64{10}},
	}

	if _, err := engine.Run(context.Background(), series, 1); err == nil {
		t.Error("expected error when no series can be forecast")
	}
}

func TestEngineRejectsBadYears(t *testing.T) {
	engine := NewEngine(NewRegistry(t.TempDir()), 0)
	if _, err := engine.Run(context.Background(), nil, 0); err == nil {
		t.Error("expected error for years < 1")
	}
}

func TestForecastNeverNegative(t *testing.T) {
	engine := NewEngine(NewRegistry(t.TempDir()), 0)
	// Steeply declining series
	series := []database.PathwaySeries{
		{
			DegreeProgram: "Arts",
			Pathway:       "History",
			Years:         []int{2022, 2023, 2024},
			Enrollments:   []float64{30, 15, 2},
		},
	}

	result, err := engine.Run(context.Background(), series, 5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, f := range result.Forecasts {
		if f.EnrollmentPred < 0 {
			t.Errorf("negative forecast %f for year %d", f.EnrollmentPred, f.Year)
		}
	}
}
