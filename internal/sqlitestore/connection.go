/**
 * CONTEXT:   SQLite database connection and schema management for Time Tracer
 * INPUT:     Database path and connection pool configuration
 * OUTPUT:    An opened, schema-initialized SQLite handle ready for C5 queriers
 * BUSINESS:  SQLite is the single source of truth for normalized day/project/interval data
 * CHANGE:    Opens the pooled connection, applies the embedded schema, and
 *            enables WAL mode before handing back a ready *DB
 * RISK:      Low - standard database/sql usage with proper pooling and WAL mode
 */

package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/timetracer/timetracer/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a pooled SQLite connection plus a mutex guarding Close against
// concurrent SQL() calls.
type DB struct {
	sql  *sql.DB
	path string
	mu   sync.RWMutex
	log  logger.Logger
}

// Config holds pool tuning knobs; it omits timezone conversion helpers since
// the report pipeline always receives dates as already-formatted ISO strings.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns sensible pooling defaults for a single-writer,
// many-reader CLI-driven workload.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:            path,
		MaxOpenConns:    8,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}
}

// Open creates the database directory if needed, opens a pooled SQLite
// connection with WAL + foreign keys enabled, and applies the embedded
// schema within a transaction.
func Open(cfg *Config, log logger.Logger) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sqlitestore: connection config cannot be nil")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlitestore: database path cannot be empty")
	}
	if log == nil {
		log = logger.NewDefault("sqlitestore")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlitestore: failed to create database directory: %w", err)
		}
	}

	dsn := cfg.Path +
		"?_foreign_keys=on" +
		"&_journal_mode=WAL" +
		"&_synchronous=NORMAL" +
		"&_timeout=5000"

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := &DB{sql: sqlDB, path: cfg.Path, log: log}
	if err := db.initialize(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.sql.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlitestore: connection test failed: %w", err)
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitestore: failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("sqlitestore: failed to apply schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitestore: failed to commit schema transaction: %w", err)
	}

	db.log.Info("database schema ready", "path", db.path)
	return nil
}

// SQL exposes the underlying *sql.DB for the query/repository layers.
func (db *DB) SQL() *sql.DB {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.sql
}

// WithTransaction runs fn within a transaction, rolling back on error or
// panic-free early return and committing only on success.
func (db *DB) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitestore: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitestore: failed to commit transaction: %w", err)
	}
	return nil
}

// Close releases the pooled connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.sql == nil {
		return nil
	}
	err := db.sql.Close()
	db.sql = nil
	return err
}
