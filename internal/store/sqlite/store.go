// Package sqlite provides a SQLite-backed scenario store. Documents are kept as
// canonical JSON.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ivlev/slideplay/internal/scenario"
	"github.com/ivlev/slideplay/internal/store"
)

//go:embed schema.sql
var schema string

// Store persists scenarios in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ store.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and creates its schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts or replaces one document.
func (s *Store) Save(ctx context.Context, id string, doc *scenario.Scenario) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := store.CheckID(id); err != nil {
		return err
	}
	data, err := scenario.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO scenarios (id, title, slides, document, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   slides = excluded.slides,
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		id,
		doc.Title,
		len(doc.Slides),
		data,
		toMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("save scenario %s: %w", id, err)
	}
	return nil
}

// Load returns one document by id.
func (s *Store) Load(ctx context.Context, id string) (*scenario.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT document FROM scenarios WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", id, err)
	}
	doc, err := scenario.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", id, err)
	}
	return doc, nil
}

// List returns summaries, most recently updated first.
func (s *Store) List(ctx context.Context) ([]store.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, title, slides, updated_at FROM scenarios ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var out []store.Summary
	for rows.Next() {
		var (
			sum       store.Summary
			updatedAt int64
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Slides, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		sum.UpdatedAt = fromMillis(updatedAt)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}
	return out, nil
}

// Delete removes one document.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scenario %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scenario %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return nil
}
