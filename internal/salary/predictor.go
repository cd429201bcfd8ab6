// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package salary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/metrics"
	"github.com/academitrend/academitrend/internal/models"
)

// ErrModelNotLoaded indicates the salary artifacts are absent or invalid.
// Handlers map it to HTTP 503.
var ErrModelNotLoaded = errors.New("salary model not loaded")

// Feature names the engineer recognizes. They match the JSON field names of
// the student profile input.
const (
	featDegreeProgram  = "degree_program"
	featPathway        = "pathway"
	featGPA            = "gpa"
	featSemester       = "semester"
	featInternships    = "internships_completed"
	featProjects       = "projects_completed"
	featCertifications = "certifications_earned"
)

// Predictor serves salary predictions from the loaded artifacts. Reloads go
// through a circuit breaker so repeated failures back off instead of
// hammering a broken artifact on every request.
type Predictor struct {
	fePath    string
	modelPath string

	mu     sync.RWMutex
	fe     *FeatureEngineer
	model  *Model
	loaded bool

	breaker *gobreaker.CircuitBreaker[bool]
}

// NewPredictor creates a predictor and attempts an initial artifact load.
// A failed initial load is not fatal; the predictor starts unloaded and
// salary endpoints return 503 until a reload succeeds.
func NewPredictor(fePath, modelPath string) *Predictor {
	p := &Predictor{
		fePath:    fePath,
		modelPath: modelPath,
	}

	p.breaker = gobreaker.NewCircuitBreaker[bool](gobreaker.Settings{
		Name:    "salary-artifact-reload",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("salary reload breaker state change")
		},
	})

	if err := p.Reload(); err != nil {
		logging.Warn().Err(err).Msg("salary model artifacts not loaded at startup")
	}

	return p
}

// Reload re-reads both artifacts from disk through the circuit breaker.
func (p *Predictor) Reload() error {
	_, err := p.breaker.Execute(func() (bool, error) {
		fe, err := loadFeatureEngineer(p.fePath)
		if err != nil {
			metrics.RecordModelLoadFailure("feature_engineer")
			return false, err
		}

		model, err := loadModel(p.modelPath, fe)
		if err != nil {
			metrics.RecordModelLoadFailure("trained_model")
			return false, err
		}

		p.mu.Lock()
		p.fe = fe
		p.model = model
		p.loaded = true
		p.mu.Unlock()

		metrics.SetSalaryModelLoaded(true)
		logging.Info().
			Str("model_type", model.ModelType).
			Int("features", len(model.Coefficients)).
			Msg("salary model artifacts loaded")
		return true, nil
	})
	if err != nil {
		p.mu.Lock()
		p.loaded = false
		p.mu.Unlock()
		metrics.SetSalaryModelLoaded(false)
		return fmt.Errorf("salary artifact reload failed: %w", err)
	}
	return nil
}

// Loaded reports whether predictions can be served.
func (p *Predictor) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// ArtifactPaths returns the configured artifact locations.
func (p *Predictor) ArtifactPaths() (string, string) {
	return p.fePath, p.modelPath
}

// ModelType returns the loaded model's type, or empty when unloaded.
func (p *Predictor) ModelType() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.loaded {
		return ""
	}
	return p.model.ModelType
}

// Predict computes the salary prediction for one student profile.
func (p *Predictor) Predict(profile models.StudentProfile) (*models.SalaryPrediction, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.loaded {
		return nil, ErrModelNotLoaded
	}

	start := time.Now()
	vector, err := p.fe.featureVector(profile)
	if err != nil {
		return nil, err
	}

	x := mat.NewVecDense(len(vector), vector)
	w := mat.NewVecDense(len(p.model.Coefficients), p.model.Coefficients)
	predicted := p.model.Intercept + mat.Dot(w, x)
	if predicted < 0 {
		predicted = 0
	}

	metrics.RecordPrediction("salary", p.model.ModelType, time.Since(start))

	return &models.SalaryPrediction{
		StudentID:         profile.StudentID,
		PredictedSalary:   predicted,
		Currency:          p.model.Currency,
		Pathway:           profile.Pathway,
		GPA:               profile.GPA,
		Semester:          profile.Semester,
		EmployabilityBand: employabilityBand(predicted),
	}, nil
}

// featureVector transforms a profile into the model's input vector:
// one-hot categorical columns followed or interleaved with standardized
// numerics, in FeatureOrder order.
func (fe *FeatureEngineer) featureVector(profile models.StudentProfile) ([]float64, error) {
	vector := make([]float64, 0, fe.vectorSize())

	for _, name := range fe.FeatureOrder {
		if categories, ok := fe.Categorical[name]; ok {
			value, err := categoricalValue(profile, name)
			if err != nil {
				return nil, err
			}
			matched := false
			for _, category := range categories {
				if strings.EqualFold(category, value) {
					vector = append(vector, 1)
					matched = true
				} else {
					vector = append(vector, 0)
				}
			}
			if !matched {
				return nil, fmt.Errorf("unknown %s %q, expected one of: %s",
					name, value, strings.Join(categories, ", "))
			}
			continue
		}

		scale := fe.Numeric[name]
		value := numericValue(profile, name)
		if scale.Std > 0 {
			value = (value - scale.Mean) / scale.Std
		}
		vector = append(vector, value)
	}

	return vector, nil
}

func categoricalValue(profile models.StudentProfile, name string) (string, error) {
	switch name {
	case featDegreeProgram:
		return profile.DegreeProgram, nil
	case featPathway:
		return profile.Pathway, nil
	default:
		return "", fmt.Errorf("unsupported categorical feature %q", name)
	}
}

func numericValue(profile models.StudentProfile, name string) float64 {
	switch name {
	case featGPA:
		return profile.GPA
	case featSemester:
		return float64(profile.Semester)
	case featInternships:
		return float64(profile.InternshipsCompleted)
	case featProjects:
		return float64(profile.ProjectsCompleted)
	case featCertifications:
		return float64(profile.CertificationsEarned)
	default:
		return 0
	}
}

// employabilityBand buckets a predicted salary into a coarse outlook label.
func employabilityBand(salary float64) string {
	switch {
	case salary >= 120000:
		return "excellent"
	case salary >= 80000:
		return "strong"
	case salary >= 50000:
		return "moderate"
	default:
		return "developing"
	}
}

// InputSchema describes the expected prediction input, derived from the
// loaded feature engineer.
func (p *Predictor) InputSchema() ([]models.SchemaField, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.loaded {
		return nil, ErrModelNotLoaded
	}

	fields := make([]models.SchemaField, 0, len(p.fe.FeatureOrder)+1)
	fields = append(fields, models.SchemaField{
		Name:        "student_id",
		Type:        "string",
		Required:    false,
		Description: "Optional identifier echoed back in the prediction",
	})

	for _, name := range p.fe.FeatureOrder {
		if categories, ok := p.fe.Categorical[name]; ok {
			sorted := make([]string, len(categories))
			copy(sorted, categories)
			sort.Strings(sorted)
			fields = append(fields, models.SchemaField{
				Name:          name,
				Type:          "string",
				Required:      true,
				AllowedValues: sorted,
			})
			continue
		}

		field := models.SchemaField{
			Name:     name,
			Type:     "number",
			Required: true,
		}
		if name == featGPA {
			field.Min = floatPtr(0)
			field.Max = floatPtr(4)
		}
		if name == featSemester {
			field.Min = floatPtr(1)
			field.Max = floatPtr(12)
		}
		fields = append(fields, field)
	}

	return fields, nil
}

// ExampleProfile builds a valid example input from the loaded encodings.
func (p *Predictor) ExampleProfile() models.StudentProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()

	example := models.StudentProfile{
		GPA:                  3.4,
		Semester:             6,
		InternshipsCompleted: 1,
		ProjectsCompleted:    3,
		CertificationsEarned: 2,
	}
	if p.loaded {
		if programs := p.fe.Categorical[featDegreeProgram]; len(programs) > 0 {
			example.DegreeProgram = programs[0]
		}
		if pathways := p.fe.Categorical[featPathway]; len(pathways) > 0 {
			example.Pathway = pathways[0]
		}
	}
	return example
}

// Currency returns the loaded model's currency, or empty when unloaded.
func (p *Predictor) Currency() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.loaded {
		return ""
	}
	return p.model.Currency
}

func floatPtr(f float64) *float64 { return &f }
