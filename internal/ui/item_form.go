package ui

import (
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-timeline/internal/form"
)

// FormValues is the read side of the form binding
type FormValues interface {
	Value(path string) string
	Fields(index int) []string
}

var placementFields = []string{form.FieldStart, form.FieldStop, form.FieldPriority, form.FieldLabel}

// ItemForm shows the fields of the active item and edits one at a time.
// Tab moves the focus, Enter starts and confirms an edit, Escape cancels.
type ItemForm struct {
	values  FormValues
	focus   int
	editing bool
	input   *LineInput
}

// NewItemForm creates a form reading from values
func NewItemForm(values FormValues) *ItemForm {
	return &ItemForm{
		values: values,
		input:  NewLineInput(nil),
	}
}

// FieldsOf returns the fields of the item at index: the placement fields
// first, then attributes in name order
func (f *ItemForm) FieldsOf(index int) []string {
	fields := slices.Clone(placementFields)
	for _, name := range f.values.Fields(index) {
		if !slices.Contains(fields, name) {
			fields = append(fields, name)
		}
	}
	return fields
}

// Focused returns the focused field name of the item at index
func (f *ItemForm) Focused(index int) string {
	fields := f.FieldsOf(index)
	return fields[f.focus%len(fields)]
}

// Focus moves the focus to a named field
func (f *ItemForm) Focus(index int, field string) {
	if i := slices.Index(f.FieldsOf(index), field); i >= 0 {
		f.focus = i
	}
}

// IsEditing reports whether a field is being edited
func (f *ItemForm) IsEditing() bool {
	return f.editing
}

// Edit starts editing the focused field, prefilled with its value
func (f *ItemForm) Edit(index int) {
	f.editing = true
	f.input.SetText(f.values.Value(form.FieldPath(index, f.Focused(index))))
}

// Cancel stops editing without a change
func (f *ItemForm) Cancel() {
	f.editing = false
}

// HandleKey processes a key for the item at index. When an edit is
// confirmed it returns the field and the typed value.
func (f *ItemForm) HandleKey(index int, ev *tcell.EventKey) (field, value string, changed bool) {
	n := len(f.FieldsOf(index))
	switch ev.Key() {
	case tcell.KeyTab:
		f.editing = false
		f.focus = (f.focus + 1) % n
		return "", "", false
	case tcell.KeyBacktab:
		f.editing = false
		f.focus = (f.focus - 1 + n) % n
		return "", "", false
	case tcell.KeyEscape:
		f.Cancel()
		return "", "", false
	case tcell.KeyEnter:
		if !f.editing {
			f.Edit(index)
			return "", "", false
		}
		f.editing = false
		return f.Focused(index), f.input.Text(), true
	}
	if f.editing {
		f.input.HandleKey(ev)
	}
	return "", "", false
}

// Render draws the fields of the item at index from row y. Nothing is
// drawn without an active item.
func (f *ItemForm) Render(screen *Screen, index, y int) {
	if index < 0 {
		return
	}
	width := screen.GetWidth()
	x := 1
	for i, field := range f.FieldsOf(index) {
		label := field + ": "
		if x+StringWidth(label) >= width {
			break
		}
		x = screen.DrawString(x, y, label, screen.FormLabelStyle())

		focused := i == f.focus%len(f.FieldsOf(index))
		if focused && f.editing {
			end := min(width, x+max(12, StringWidth(f.input.Text())+1))
			f.input.Render(screen, x, y, end, screen.FormEditingStyle(), screen.CommandCursorStyle())
			x = end + 2
			continue
		}

		style := screen.FormValueStyle()
		if focused {
			style = style.Underline(true)
		}
		value := f.values.Value(form.FieldPath(index, field))
		x = screen.DrawStringLimited(x, y, value, width-x, style) + 2
	}
}
