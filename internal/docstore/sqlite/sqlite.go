// Package sqlite provides a SQLite-backed implementation of the docstore.Backend interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/fintrack/internal/docstore"
)

// Ensure SQLiteStore implements docstore.Backend
var _ docstore.Backend = (*SQLiteStore)(nil)

// SQLiteStore implements docstore.Backend using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serializes commits, which makes the version check and
	// the writes of a commit atomic with respect to other commits.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get retrieves a document by path.
func (s *SQLiteStore) Get(ctx context.Context, path string) (*docstore.Record, error) {
	var (
		data      string
		version   int64
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT data, version, updated_at FROM documents WHERE path = ?",
		path,
	).Scan(&data, &version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", docstore.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &docstore.Record{
		Path:       path,
		Data:       []byte(data),
		Version:    strconv.FormatInt(version, 10),
		UpdateTime: time.Unix(0, updatedAt).UTC(),
	}, nil
}

// List retrieves the direct children of a collection ordered by path.
func (s *SQLiteStore) List(ctx context.Context, collection string) ([]*docstore.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT path, data, version, updated_at FROM documents WHERE collection = ? ORDER BY path",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var recs []*docstore.Record
	for rows.Next() {
		var (
			path, data         string
			version, updatedAt int64
		)
		if err := rows.Scan(&path, &data, &version, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		recs = append(recs, &docstore.Record{
			Path:       path,
			Data:       []byte(data),
			Version:    strconv.FormatInt(version, 10),
			UpdateTime: time.Unix(0, updatedAt).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return recs, nil
}

// Commit checks preconditions and applies mutations in one SQL transaction.
// Every commit takes the next value of the version counter, so a path that
// is deleted and written again never repeats an earlier version.
func (s *SQLiteStore) Commit(ctx context.Context, pre []docstore.Precondition, muts []docstore.Mutation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range pre {
		current := ""
		var version int64
		err := tx.QueryRowContext(ctx, "SELECT version FROM documents WHERE path = ?", p.Path).Scan(&version)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to check version: %w", err)
		default:
			current = strconv.FormatInt(version, 10)
		}
		if current != p.Version {
			return fmt.Errorf("%w: %s", docstore.ErrConflict, p.Path)
		}
	}

	var next int64
	err = tx.QueryRowContext(ctx,
		"UPDATE counters SET value = value + 1 WHERE name = 'version' RETURNING value",
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to allocate version: %w", err)
	}

	now := time.Now().UnixNano()
	for _, m := range muts {
		if m.Delete {
			if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE path = ?", m.Path); err != nil {
				return fmt.Errorf("failed to delete document: %w", err)
			}
			continue
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (path, collection, data, version, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(path) DO UPDATE SET
			   data = excluded.data,
			   version = excluded.version,
			   updated_at = excluded.updated_at`,
			m.Path, parentOf(m.Path), string(m.Data), next, now,
		)
		if err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// parentOf returns the collection path of a document path.
func parentOf(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return ""
}
