package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// StoreMetrics records store read outcomes. Satisfied by
// metrics.Metrics; kept as an interface so storage stays free of the
// prometheus dependency.
type StoreMetrics interface {
	RecordStoreQuery(table, status string, duration float64)
}

// DB wraps the SQLite database connection
type DB struct {
	conn    *sql.DB
	path    string
	metrics StoreMetrics
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure directory exists (skip for in-memory database)
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=30000"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable foreign keys
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := conn.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: dbPath,
	}

	if err := InitSchema(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// SetMetrics attaches a metrics recorder for store reads
func (db *DB) SetMetrics(m StoreMetrics) {
	db.metrics = m
}

func (db *DB) recordStore(table, status string, start time.Time) {
	if db.metrics != nil {
		db.metrics.RecordStoreQuery(table, status, time.Since(start).Seconds())
	}
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying *sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Ping verifies the database connection is alive
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// NewTestDB creates an in-memory database for testing.
// The database is automatically cleaned up when closed.
func NewTestDB() (*DB, error) {
	return New(":memory:")
}
