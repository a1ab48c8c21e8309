// Package store handles SQLite persistence of selection presets.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/mindsight/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrPresetNotFound is returned when no preset has the requested name.
var ErrPresetNotFound = errors.New("preset not found")

// Store wraps SQLite access for presets.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS presets (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			item_a TEXT NOT NULL,
			item_b TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SavePreset inserts or replaces a preset by name.
func (s *Store) SavePreset(ctx context.Context, p model.Preset) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errors.New("preset name is empty")
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO presets (name, category, item_a, item_b, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			category = excluded.category,
			item_a = excluded.item_a,
			item_b = excluded.item_b,
			created_at = excluded.created_at`,
		name,
		p.Category,
		p.Items[0],
		p.Items[1],
		createdAt.Format(time.RFC3339Nano),
	)
	return err
}

// GetPreset loads a preset by name.
func (s *Store) GetPreset(ctx context.Context, name string) (model.Preset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, category, item_a, item_b, created_at FROM presets WHERE name = ?`,
		strings.TrimSpace(name))
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Preset{}, ErrPresetNotFound
	}
	return p, err
}

// ListPresets returns all presets ordered by name.
func (s *Store) ListPresets(ctx context.Context) ([]model.Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, category, item_a, item_b, created_at FROM presets ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var presets []model.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return presets, nil
}

// DeletePreset removes a preset and reports whether it existed.
func (s *Store) DeletePreset(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (model.Preset, error) {
	var p model.Preset
	var createdAt string
	if err := row.Scan(&p.Name, &p.Category, &p.Items[0], &p.Items[1], &createdAt); err != nil {
		return model.Preset{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Preset{}, err
	}
	p.CreatedAt = parsed
	return p, nil
}
