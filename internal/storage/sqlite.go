package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/tui-timeline/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps a timeline in a SQLite database, one row per item
type SQLiteStore struct {
	FilePath string
}

// NewSQLiteStore creates a store for the database at filePath
func NewSQLiteStore(filePath string) *SQLiteStore {
	return &SQLiteStore{FilePath: filePath}
}

// Path returns the database path
func (s *SQLiteStore) Path() string {
	return s.FilePath
}

// Load reads the timeline from the database
func (s *SQLiteStore) Load() (*model.Timeline, error) {
	return s.LoadContext(context.Background())
}

// Save writes the timeline to the database
func (s *SQLiteStore) Save(timeline *model.Timeline) error {
	return s.SaveContext(context.Background(), timeline)
}

// LoadContext reads the timeline. A missing database yields an empty timeline.
func (s *SQLiteStore) LoadContext(ctx context.Context) (*model.Timeline, error) {
	if _, err := os.Stat(s.FilePath); os.IsNotExist(err) {
		return model.NewTimeline("Untitled"), nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	timeline := model.NewTimeline("Untitled")
	var title string
	err = db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'title'`).Scan(&title)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to read title: %w", err)
	default:
		timeline.Title = title
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, start, stop, priority, label, attributes_json
		FROM items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.Item
		var attrs string
		if err := rows.Scan(&item.ID, &item.Start, &item.Stop, &item.Priority, &item.Label, &attrs); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if attrs != "" {
			if err := json.Unmarshal([]byte(attrs), &item.Attributes); err != nil {
				return nil, fmt.Errorf("failed to parse attributes of item %s: %w", item.ID, err)
			}
		}
		timeline.Items = append(timeline.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	return timeline, nil
}

// SaveContext replaces the stored timeline in a single transaction
func (s *SQLiteStore) SaveContext(ctx context.Context, timeline *model.Timeline) error {
	if dir := filepath.Dir(s.FilePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta(k, v) VALUES('title', ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
		timeline.Title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items(id, position, start, stop, priority, label, attributes_json)
		VALUES(?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, item := range timeline.Items {
		if item == nil {
			continue
		}
		attrs := ""
		if len(item.Attributes) > 0 {
			b, err := json.Marshal(item.Attributes)
			if err != nil {
				return fmt.Errorf("failed to marshal attributes of item %s: %w", item.ID, err)
			}
			attrs = string(b)
		}
		id := item.ID
		if id == "" {
			id = model.NewID()
		}
		if _, err := stmt.ExecContext(ctx, id, pos, item.Start, item.Stop, item.Priority, item.Label, attrs); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite registers as "sqlite"
	db, err := sql.Open("sqlite", s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	stmts := []string{
		`PRAGMA busy_timeout=5000;`,
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			start INTEGER NOT NULL,
			stop INTEGER NOT NULL,
			priority INTEGER NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			attributes_json TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to prepare database: %w", err)
		}
	}
	return db, nil
}
