// Package database opens the local SQLite state database.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// DB wraps the state database handle.
type DB struct {
	*sql.DB
	Path string
}

// Config holds connection tuning. Zero values pick the defaults.
type Config struct {
	BusyTimeout     time.Duration
	MaxConnIdleTime time.Duration
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string, logger *zap.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return open(ctx, "file:"+path, path, &Config{}, logger)
}

// OpenInMemory opens a private in-memory database with migrations applied.
// Each call gets its own database.
func OpenInMemory(ctx context.Context, logger *zap.Logger) (*DB, error) {
	name := "memdb-" + uuid.NewString()
	return open(ctx, "file:"+name+"?mode=memory&cache=shared", ":memory:", &Config{}, logger)
}

func open(ctx context.Context, dsn, path string, cfg *Config, logger *zap.Logger) (*DB, error) {
	busy := cfg.BusyTimeout
	if busy == 0 {
		busy = 5 * time.Second
	}

	dsn = withPragmas(dsn,
		"foreign_keys(1)",
		"journal_mode(WAL)",
		fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()),
	)

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer keeps SQLite free of SQLITE_BUSY between our own connections.
	sqlDB.SetMaxOpenConns(1)
	if cfg.MaxConnIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(sqlDB, logger.Named("migrations")); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Debug("Opened state database", zap.String("path", path))
	return &DB{DB: sqlDB, Path: path}, nil
}

func withPragmas(dsn string, pragmas ...string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	sep := "?"
	if u, err := url.Parse(dsn); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return dsn + sep + q.Encode()
}
