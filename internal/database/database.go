// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

// Package database provides DuckDB-backed access to the CSV datasets. The
// database itself is in-memory; every query reads the source CSV in place
// via read_csv_auto, so dataset edits on disk are visible on the next
// request without a reload step.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/academitrend/academitrend/internal/config"
	"github.com/academitrend/academitrend/internal/logging"
	"github.com/academitrend/academitrend/internal/metrics"
)

// ErrDatasetNotFound indicates the backing CSV file is absent. Handlers map
// it to a deterministic error envelope instead of a crash.
var ErrDatasetNotFound = errors.New("dataset not found")

// DB wraps the DuckDB connection and provides dataset access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens an in-memory DuckDB connection tuned from the configuration.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Disable auto-install/auto-load to prevent hangs in restricted
	// network environments.
	connStr := fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}

	if err := db.Ping(context.Background()); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to verify database connection: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Str("max_memory", cfg.MaxMemory).
		Msg("DuckDB connection established")

	return db, nil
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// checkDataset verifies the CSV file exists before handing the path to
// DuckDB, so a missing file surfaces as ErrDatasetNotFound rather than a
// parser error.
func checkDataset(path string) error {
	if path == "" {
		return fmt.Errorf("%w: no path configured", ErrDatasetNotFound)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
	}
	return nil
}

// csvSource returns the read_csv_auto expression for a dataset path. Paths
// come from configuration, not request input; single quotes are escaped for
// SQL literal safety.
func csvSource(path string) string {
	escaped := strings.ReplaceAll(path, "'", "''")
	return fmt.Sprintf("read_csv_auto('%s', header=true)", escaped)
}

// query runs a query with metric recording. The dataset label names the
// logical dataset being read, not the file path.
func (db *DB) query(ctx context.Context, operation, dataset, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery(operation, dataset, time.Since(start), err)
	if err != nil {
		logging.CtxErr(ctx, err).
			Str("operation", operation).
			Str("dataset", dataset).
			Msg("dataset query failed")
		return nil, fmt.Errorf("%s query on %s failed: %w", operation, dataset, err)
	}
	return rows, nil
}

// queryRow runs a single-row query with metric recording.
func (db *DB) queryRow(ctx context.Context, operation, dataset, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx, query, args...)
	metrics.RecordDBQuery(operation, dataset, time.Since(start), nil)
	return row
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database connection")
	}
}

// join concatenates clause fragments for the query builders.
func join(parts []string, sep string) string {
	return strings.Join(parts, sep)
}
