package storage

import (
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// Store loads and saves a timeline document
type Store interface {
	Load() (*model.Timeline, error)
	Save(timeline *model.Timeline) error
	Path() string
}

// Open returns the store for filePath. Files ending in .db, .sqlite or
// .sqlite3 are SQLite databases, everything else is JSON.
func Open(filePath string) Store {
	if IsSQLitePath(filePath) {
		return NewSQLiteStore(filePath)
	}
	return NewJSONStore(filePath)
}

// IsSQLitePath reports whether filePath names a SQLite database
func IsSQLitePath(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
