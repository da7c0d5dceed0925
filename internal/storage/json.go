package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// ErrReadOnly is returned when saving over a backup
var ErrReadOnly = errors.New("file is read-only")

// JSONStore handles JSON file persistence
type JSONStore struct {
	FilePath string
	ReadOnly bool
}

// NewJSONStore creates a new JSON store for the given file path. Backups are
// opened read-only.
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
		ReadOnly: IsBackupFile(filePath),
	}
}

// Path returns the file path of the store
func (s *JSONStore) Path() string {
	return s.FilePath
}

// Load loads a timeline from a JSON file
func (s *JSONStore) Load() (*model.Timeline, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTimeline("Untitled"), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var timeline model.Timeline
	if err := json.Unmarshal(data, &timeline); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	fillIDs(&timeline)

	return &timeline, nil
}

// Save saves a timeline to a JSON file
func (s *JSONStore) Save(timeline *model.Timeline) error {
	if s.ReadOnly {
		return fmt.Errorf("failed to save %s: %w", s.FilePath, ErrReadOnly)
	}

	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(timeline, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the timeline file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// fillIDs drops nil entries and gives items from older files an ID
func fillIDs(timeline *model.Timeline) {
	items := timeline.Items[:0]
	for _, item := range timeline.Items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			item.ID = model.NewID()
		}
		items = append(items, item)
	}
	timeline.Items = items
	if timeline.Items == nil {
		timeline.Items = make([]*model.Item, 0)
	}
}
