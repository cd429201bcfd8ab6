// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockServer struct {
	listenErr   error
	shutdownErr error
	shutdowns   atomic.Int32
	stop        chan struct{}
}

func newMockServer(listenErr error) *mockServer {
	return &mockServer{listenErr: listenErr, stop: make(chan struct{})}
}

func (m *mockServer) ListenAndServe() error {
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stop
	return nil
}

func (m *mockServer) Shutdown(ctx context.Context) error {
	m.shutdowns.Add(1)
	close(m.stop)
	return m.shutdownErr
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	t.Parallel()

	server := newMockServer(nil)
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if server.shutdowns.Load() != 1 {
		t.Errorf("shutdowns = %d, expected 1", server.shutdowns.Load())
	}
}

func TestHTTPServerServiceStartFailure(t *testing.T) {
	t.Parallel()

	startErr := errors.New("address already in use")
	svc := NewHTTPServerService(newMockServer(startErr), time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, startErr) {
		t.Errorf("Serve returned %v, expected wrapped start error", err)
	}
}

type countingRescanner struct{ scans atomic.Int32 }

func (c *countingRescanner) Rescan() { c.scans.Add(1) }

type countingReloader struct {
	reloads atomic.Int32
	err     error
}

func (c *countingReloader) Reload() error {
	c.reloads.Add(1)
	return c.err
}

func TestModelWatcherServiceRefreshCycle(t *testing.T) {
	t.Parallel()

	registry := &countingRescanner{}
	predictor := &countingReloader{}
	var refreshes atomic.Int32

	svc := NewModelWatcherService(registry, predictor, 10*time.Millisecond, func() {
		refreshes.Add(1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v, expected deadline exceeded", err)
	}

	if registry.scans.Load() == 0 {
		t.Error("expected at least one registry rescan")
	}
	if predictor.reloads.Load() == 0 {
		t.Error("expected at least one predictor reload")
	}
	if refreshes.Load() == 0 {
		t.Error("expected onRefresh to run")
	}
}

func TestModelWatcherServiceToleratesReloadFailure(t *testing.T) {
	t.Parallel()

	predictor := &countingReloader{err: errors.New("artifact missing")}
	svc := NewModelWatcherService(&countingRescanner{}, predictor, 10*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// A failing reload must not crash the watcher loop.
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v, expected deadline exceeded", err)
	}
	if predictor.reloads.Load() == 0 {
		t.Error("expected reload attempts despite failures")
	}
}
