package editor

import (
	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
)

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// Mount reports the measured viewport width. Only the first mount counts.
type Mount struct{ Width int }

// SelectItem makes an item active
type SelectItem struct{ Index int }

// DragStart begins dragging an item; it also selects it
type DragStart struct {
	Index int
	Mode  DragMode
}

// DragEnd finishes a drag with the item's final pixel rect
type DragEnd struct {
	Index int
	Rect  layout.Rect
}

// DragCancel aborts a drag without changing the item
type DragCancel struct{}

// ChangeField edits a field of the active item through the form
type ChangeField struct {
	Field string
	Value any
}

// Add appends a new item, suggesting whatever the partial leaves out
type Add struct{ Partial model.Partial }

// DuplicateCurrent appends a copy of the active item at a suggested position
type DuplicateCurrent struct{}

// DeleteCurrent removes the active item
type DeleteCurrent struct{}

// Committed reports that the collection published a new snapshot
type Committed struct{}

// AddRejected reports that an append for ItemID failed
type AddRejected struct{ ItemID string }

// Pan moves the viewport to a horizontal offset
type Pan struct{ Offset int }

// Hover reports the pointer position over an item (Index None for none)
type Hover struct {
	Index int
	Edge  bool
}

func (Mount) isEvent()            {}
func (SelectItem) isEvent()       {}
func (DragStart) isEvent()        {}
func (DragEnd) isEvent()          {}
func (DragCancel) isEvent()       {}
func (ChangeField) isEvent()      {}
func (Add) isEvent()              {}
func (DuplicateCurrent) isEvent() {}
func (DeleteCurrent) isEvent()    {}
func (Committed) isEvent()        {}
func (AddRejected) isEvent()      {}
func (Pan) isEvent()              {}
func (Hover) isEvent()            {}
