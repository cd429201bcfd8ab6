// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package services

import (
	"context"
	"time"

	"github.com/academitrend/academitrend/internal/logging"
)

// ArtifactReloader is the subset of the forecast registry and salary
// predictor the watcher drives.
type ArtifactReloader interface {
	Reload() error
}

// Rescanner matches the forecast registry's rescan method.
type Rescanner interface {
	Rescan()
}

// ModelWatcherService periodically rescans the pathway artifact directory
// and reloads the salary artifacts, so models replaced on disk are picked
// up without a restart.
type ModelWatcherService struct {
	registry  Rescanner
	predictor ArtifactReloader
	interval  time.Duration

	// onRefresh runs after every refresh cycle; used to invalidate caches.
	onRefresh func()
}

// NewModelWatcherService creates the watcher. onRefresh may be nil.
func NewModelWatcherService(registry Rescanner, predictor ArtifactReloader, interval time.Duration, onRefresh func()) *ModelWatcherService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ModelWatcherService{
		registry:  registry,
		predictor: predictor,
		interval:  interval,
		onRefresh: onRefresh,
	}
}

// Serve implements suture.Service.
func (s *ModelWatcherService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh()
		}
	}
}

func (s *ModelWatcherService) refresh() {
	s.registry.Rescan()

	if err := s.predictor.Reload(); err != nil {
		// An unloaded salary model is a degraded state, not a service
		// failure; endpoints report 503 until the artifacts are fixed.
		logging.Warn().Err(err).Msg("salary artifact reload failed during watch cycle")
	}

	if s.onRefresh != nil {
		s.onRefresh()
	}
}

// String identifies the service in supervisor logs.
func (s *ModelWatcherService) String() string {
	return "model-watcher"
}
