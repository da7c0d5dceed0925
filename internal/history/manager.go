// Package history persists input histories (commands, searches) as TOML
package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Manager handles loading and saving history to TOML files
type Manager struct {
	historyDir string
}

// File is the structure of a history TOML file
type File struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a history manager in ~/.local/share/tui-timeline/history/
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewManagerIn(filepath.Join(homeDir, ".local", "share", "tui-timeline", "history"))
}

// NewManagerIn creates a history manager storing its files in dir
func NewManagerIn(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Manager{historyDir: dir}, nil
}

// Load loads history entries. A missing or corrupted file yields no entries.
func (m *Manager) Load(filename string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.historyDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var histFile File
	if err := toml.Unmarshal(data, &histFile); err != nil {
		return []string{}, nil
	}

	return histFile.Entries, nil
}

// Save saves history entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	data, err := toml.Marshal(File{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.historyDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
