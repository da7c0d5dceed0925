// Package editor implements the timeline's interaction state machine.
//
// Reduce is a pure transition function from (State, Event) to a new State
// plus the Effects to perform. Controller owns the current State and runs the
// effects against the collection, form and cursor it was constructed with.
package editor

import "fmt"

// None is the Active value of an idle state
const None = -1

// Cursor is the pointer style shown over the timeline
type Cursor string

// Cursor styles
const (
	CursorDefault Cursor = "default"
	CursorPointer Cursor = "pointer"
	CursorMove    Cursor = "move"
	CursorResize  Cursor = "ew-resize"
)

// DragMode says what a drag changes
type DragMode int

const (
	// DragMove moves the whole item
	DragMove DragMode = iota
	// DragResize moves the stop of the item
	DragResize
)

func (m DragMode) cursor() Cursor {
	if m == DragResize {
		return CursorResize
	}
	return CursorMove
}

// Drag records an in-flight drag
type Drag struct {
	ItemID  string
	Index   int
	Mode    DragMode
	Version uint64
}

// PendingAdd is an append that has been requested but not yet observed
type PendingAdd struct {
	ItemID string
	After  uint64
}

// State is the transient UI state of the editor
type State struct {
	Active        int
	ActiveID      string
	ViewportWidth int
	Offset        int
	Cursor        Cursor
	Drag          *Drag
	Pending       []PendingAdd
}

// NewState returns an idle state
func NewState() State {
	return State{
		Active: None,
		Cursor: CursorDefault,
	}
}

// IsActive reports whether an item is selected
func (s State) IsActive() bool {
	return s.Active != None
}

// IsDragging reports whether a drag is in flight
func (s State) IsDragging() bool {
	return s.Drag != nil
}

func (s State) String() string {
	if !s.IsActive() {
		return "Idle"
	}
	return fmt.Sprintf("Active(%d)", s.Active)
}

func (s State) idle() State {
	s.Active = None
	s.ActiveID = ""
	return s
}
