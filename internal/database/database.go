// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/allocarte/internal/config"
	"github.com/tomtom215/allocarte/internal/logging"
)

// Supported drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// DB wraps the user store connection.
type DB struct {
	conn   *sql.DB
	driver string
	path   string
}

// New opens the database at cfg.Path with cfg.Driver and applies pending
// migrations.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	dsn, err := dataSourceName(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, err
	}

	// Ensure parent directory exists for database file
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, driver: cfg.Driver, path: cfg.Path}
	db.configureConnectionPool()

	if err := db.runMigrations(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Msg("User database ready")
	return db, nil
}

func dataSourceName(driver, path string) (string, error) {
	switch driver {
	case DriverDuckDB:
		return path, nil
	case DriverSQLite:
		return path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// configureConnectionPool sets connection pool parameters. SQLite allows a
// single writer, so its pool is capped at one connection.
func (db *DB) configureConnectionPool() {
	if db.driver == DriverSQLite {
		db.conn.SetMaxOpenConns(1)
	} else {
		db.conn.SetMaxOpenConns(4)
	}
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Driver returns the driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Conn returns the underlying SQL connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping checks the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database.
func (db *DB) Close() error {
	return db.conn.Close()
}
