// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package forecast projects degree-pathway enrollment into future years.
// Fitted model parameters are stored as JSON artifacts in the saved-models
// directory; pathways without an artifact fall back to a linear trend fitted
// on the fly from the historical series.
package forecast

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/metrics"
	"github.com/academitrend/academitrend/internal/models"
)

// Model type names carried in artifacts and forecast rows.
const (
	ModelLinearTrend = "linear_trend"
	ModelHolt        = "holt"
)

// Artifact is one fitted pathway model loaded from the saved-models
// directory.
type Artifact struct {
	Name          string `json:"name"`
	Model         string `json:"model"`
	DegreeProgram string `json:"degree_program"`
	Pathway       string `json:"pathway"`
	LastYear      int    `json:"last_year"`
	Params        Params `json:"params"`
}

// Params holds the fitted parameters of a pathway model. Linear trend uses
// Intercept/Slope; Holt uses Level/Trend with the smoothing factors it was
// fitted with.
type Params struct {
	Intercept float64 `json:"intercept,omitempty"`
	Slope     float64 `json:"slope,omitempty"`
	Level     float64 `json:"level,omitempty"`
	Trend     float64 `json:"trend,omitempty"`
	Alpha     float64 `json:"alpha,omitempty"`
	Beta      float64 `json:"beta,omitempty"`
}

// validate checks an artifact for the fields its model type requires.
func (a *Artifact) validate() error {
	if a.DegreeProgram == "" || a.Pathway == "" {
		return fmt.Errorf("artifact %s missing degree_program or pathway", a.Name)
	}
	switch a.Model {
	case ModelLinearTrend, ModelHolt:
	default:
		return fmt.Errorf("artifact %s has unknown model type %q", a.Name, a.Model)
	}
	if a.LastYear == 0 {
		return fmt.Errorf("artifact %s missing last_year", a.Name)
	}
	return nil
}

// Registry indexes the JSON model artifacts in the saved-models directory.
// Rescan may be called concurrently with reads.
type Registry struct {
	dir string

	mu        sync.RWMutex
	artifacts map[string]*Artifact // keyed by degree_program/pathway, lowercased
	inventory []models.ModelArtifact
}

// NewRegistry creates a registry over the given directory and performs an
// initial scan. A missing directory is not an error; the registry is simply
// empty until artifacts appear.
func NewRegistry(dir string) *Registry {
	r := &Registry{
		dir:       dir,
		artifacts: make(map[string]*Artifact),
	}
	r.Rescan()
	return r
}

// seriesKey builds the lookup key for a degree-program/pathway pair.
func seriesKey(degreeProgram, pathway string) string {
	return strings.ToLower(degreeProgram) + "/" + strings.ToLower(pathway)
}

// Rescan reloads all artifacts from disk, replacing the previous index.
// Unreadable or invalid files are recorded in the inventory as unloadable
// but do not fail the scan.
func (r *Registry) Rescan() {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		logging.Warn().Err(err).Str("dir", r.dir).Msg("saved-models directory not readable")
		r.mu.Lock()
		r.artifacts = make(map[string]*Artifact)
		r.inventory = nil
		r.mu.Unlock()
		metrics.ModelsLoaded.Set(0)
		return
	}

	artifacts := make(map[string]*Artifact)
	inventory := make([]models.ModelArtifact, 0, len(entries))
	loadable := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(r.dir, entry.Name())
		item := models.ModelArtifact{
			Name: entry.Name(),
			Path: path,
		}
		if info, err := entry.Info(); err == nil {
			item.SizeByte = info.Size()
		}

		artifact, err := loadArtifact(path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("skipping unloadable model artifact")
			metrics.RecordModelLoadFailure(entry.Name())
			inventory = append(inventory, item)
			continue
		}

		item.Model = artifact.Model
		item.Target = artifact.DegreeProgram + " / " + artifact.Pathway
		item.Loadable = true
		inventory = append(inventory, item)

		artifacts[seriesKey(artifact.DegreeProgram, artifact.Pathway)] = artifact
		loadable++
	}

	sort.Slice(inventory, func(i, j int) bool { return inventory[i].Name < inventory[j].Name })

	r.mu.Lock()
	r.artifacts = artifacts
	r.inventory = inventory
	r.mu.Unlock()

	metrics.ModelsLoaded.Set(float64(loadable))
	logging.Info().Int("total", len(inventory)).Int("loadable", loadable).Msg("model artifact scan complete")
}

// Lookup returns the artifact fitted for a degree-program/pathway pair, or
// nil when none exists.
func (r *Registry) Lookup(degreeProgram, pathway string) *Artifact {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.artifacts[seriesKey(degreeProgram, pathway)]
}

// Inventory returns the artifact listing from the most recent scan.
func (r *Registry) Inventory() []models.ModelArtifact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ModelArtifact, len(r.inventory))
	copy(out, r.inventory)
	return out
}

// Dir returns the scanned directory path.
func (r *Registry) Dir() string {
	return r.dir
}

// LoadableCount returns the number of loadable artifacts in the index.
func (r *Registry) LoadableCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.artifacts)
}

func loadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from a directory scan of the configured models dir
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", filepath.Base(path), err)
	}
	if artifact.Name == "" {
		artifact.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	if err := artifact.validate(); err != nil {
		return nil, err
	}

	return &artifact, nil
}
