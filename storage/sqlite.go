package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS mappings (
	slug       TEXT PRIMARY KEY,
	target_url TEXT NOT NULL
)`

// SQLiteStorage implements Store using SQLite.
type SQLiteStorage struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath and
// ensures the mappings table exists.
func NewSQLiteStorage(ctx context.Context, dbPath string, logger *zap.Logger) (*SQLiteStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var dsn string
	if dbPath == ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(DELETE)&_pragma=synchronous(NORMAL)"
	} else {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create mappings table: %w", err)
	}

	logger.Info("Opened sqlite store", zap.String("path", dbPath))
	return &SQLiteStorage{db: db, logger: logger}, nil
}

// Get returns the target URL stored under slug.
func (s *SQLiteStorage) Get(ctx context.Context, slug string) (string, error) {
	var targetURL string
	err := s.db.GetContext(ctx, &targetURL, "SELECT target_url FROM mappings WHERE slug = ?", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get mapping: %w", err)
	}
	return targetURL, nil
}

// PutIfAbsent inserts the mapping, leaving an existing row for slug in place.
func (s *SQLiteStorage) PutIfAbsent(ctx context.Context, slug, targetURL string) error {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO mappings (slug, target_url) VALUES (?, ?) ON CONFLICT(slug) DO NOTHING",
		slug, targetURL)
	if err != nil {
		return fmt.Errorf("insert mapping: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert mapping: %w", err)
	}
	if rows == 0 {
		s.logger.Warn("Attempt to overwrite existing slug", zap.String("slug", slug))
		return ErrSlugExists
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
