package ui

import (
	"log/slog"

	"github.com/pstuifzand/tui-timeline/internal/history"
)

// History keeps previous inputs of a line input and lets the user step
// through them. With a manager attached every Add is persisted.
type History struct {
	entries      []string
	currentIndex int // -1 when not navigating
	maxEntries   int
	temporary    string // input typed before navigation started
	manager      *history.Manager
	filename     string
}

// NewHistory creates an in-memory history
func NewHistory(maxEntries int) *History {
	return &History{
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// NewHistoryWithManager creates a history persisted as filename. When the
// file cannot be read the history starts empty and the error is returned.
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(maxEntries)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add records entry. Empty entries and repeats of the last entry are skipped.
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}
	h.Reset()
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	if h.manager != nil && h.filename != "" {
		if err := h.manager.Save(h.filename, h.entries); err != nil {
			slog.Warn("failed to save history", "file", h.filename, "err", err)
		}
	}
}

// Previous steps back. The first call starts at the newest entry.
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.currentIndex < 0:
		h.currentIndex = len(h.entries) - 1
	case h.currentIndex > 0:
		h.currentIndex--
	}
	return h.entries[h.currentIndex], true
}

// Next steps forward. Stepping past the newest entry returns the input saved
// with SetTemporary and ends navigation.
func (h *History) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}
	h.currentIndex++
	if h.currentIndex >= len(h.entries) {
		temp := h.temporary
		h.Reset()
		return temp, true
	}
	return h.entries[h.currentIndex], true
}

// Reset ends navigation
func (h *History) Reset() {
	h.currentIndex = -1
	h.temporary = ""
}

// SetTemporary stores the current input before navigation starts
func (h *History) SetTemporary(input string) {
	h.temporary = input
}

// GetAll returns a copy of all entries, oldest first
func (h *History) GetAll() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating reports whether the user is stepping through entries
func (h *History) IsNavigating() bool {
	return h.currentIndex >= 0
}
