package editor

import "github.com/pstuifzand/tui-timeline/internal/model"

// Effect is an output of Reduce
type Effect interface {
	isEffect()
}

// LoadForm replaces form values at Path without treating them as an edit
type LoadForm struct {
	Path  string
	Value any
}

// ChangeForm edits the form value at Path
type ChangeForm struct {
	Path  string
	Value any
}

// AppendItem requests that Item be appended to the collection
type AppendItem struct{ Item model.Item }

// UpdateItem requests that Fields be applied to the referenced item
type UpdateItem struct {
	Ref    model.Ref
	Fields model.Partial
}

// RemoveItem requests that the referenced item be removed
type RemoveItem struct{ Ref model.Ref }

// SetCursor changes the pointer style
type SetCursor struct{ Cursor Cursor }

func (LoadForm) isEffect()   {}
func (ChangeForm) isEffect() {}
func (AppendItem) isEffect() {}
func (UpdateItem) isEffect() {}
func (RemoveItem) isEffect() {}
func (SetCursor) isEffect()  {}
