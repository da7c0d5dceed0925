package app

import (
	"fmt"
	"strconv"

	"github.com/pstuifzand/tui-timeline/internal/editor"
	"github.com/pstuifzand/tui-timeline/internal/form"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
	// Sequences makes this a prefix key waiting for a second key
	Sequences map[rune]KeyBinding
}

// GetKey returns the key of this keybinding
func (kb KeyBinding) GetKey() string {
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb KeyBinding) GetDescription() string {
	return kb.Description
}

type helpEntry struct {
	key, description string
}

func (h helpEntry) GetKey() string         { return h.key }
func (h helpEntry) GetDescription() string { return h.description }

func helpEntries[T ui.KeyBindingInfo](items []T) []ui.KeyBindingInfo {
	var out []ui.KeyBindingInfo
	for _, item := range items {
		out = append(out, item)
		if kb, ok := any(item).(KeyBinding); ok {
			for _, seq := range sortedRunes(kb.Sequences) {
				out = append(out, helpEntry{
					key:         string(kb.Key) + string(seq),
					description: kb.Sequences[seq].Description,
				})
			}
		}
	}
	return out
}

// InitializeKeybindings sets up the normal mode key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'a',
			Description: "Add an item after the last one",
			Handler: func(app *App) {
				app.ctrl.Add(model.Partial{})
				app.SetStatus("Added item")
			},
		},
		{
			Key:         'y',
			Description: "Duplicate the active item",
			Handler: func(app *App) {
				if app.requireActive() {
					app.ctrl.DuplicateCurrent()
					app.SetStatus("Duplicated item")
				}
			},
		},
		{
			Key:         'd',
			Description: "Delete the active item",
			Handler: func(app *App) {
				if app.requireActive() {
					app.ctrl.DeleteCurrent()
					app.SetStatus("Deleted item")
				}
			},
		},
		{
			Key:         'e',
			Description: "Edit the active item in $EDITOR",
			Handler: func(app *App) {
				app.editExternally()
			},
		},
		{
			Key:         'n',
			Description: "Select the next search match",
			Handler: func(app *App) {
				if idx, ok := app.search.Next(); ok {
					app.selectAndReveal(idx)
				}
			},
		},
		{
			Key:         'N',
			Description: "Select the previous search match",
			Handler: func(app *App) {
				if idx, ok := app.search.Previous(); ok {
					app.selectAndReveal(idx)
				}
			},
		},
		{
			Key:         'j',
			Description: "Select the next item",
			Handler: func(app *App) {
				app.selectRelative(1)
			},
		},
		{
			Key:         'k',
			Description: "Select the previous item",
			Handler: func(app *App) {
				app.selectRelative(-1)
			},
		},
		{
			Key:         'h',
			Description: "Pan left",
			Handler: func(app *App) {
				app.panBy(app.panStep())
			},
		},
		{
			Key:         'l',
			Description: "Pan right",
			Handler: func(app *App) {
				app.panBy(-app.panStep())
			},
		},
		{
			Key:         'H',
			Description: "Move the active item earlier",
			Handler: func(app *App) {
				app.nudge(-app.cfg.Display.UnitsPerColumn)
			},
		},
		{
			Key:         'L',
			Description: "Move the active item later",
			Handler: func(app *App) {
				app.nudge(app.cfg.Display.UnitsPerColumn)
			},
		},
		{
			Key:         'K',
			Description: "Move the active item one layer up",
			Handler: func(app *App) {
				app.changeLayer(-1)
			},
		},
		{
			Key:         'J',
			Description: "Move the active item one layer down",
			Handler: func(app *App) {
				app.changeLayer(1)
			},
		},
		{
			Key:         'g',
			Description: "Go to",
			Sequences: map[rune]KeyBinding{
				'g': {Description: "Pan to the start of the range", Handler: func(app *App) {
					_, hi := app.ctrl.Geometry().PanBounds()
					app.ctrl.Pan(hi)
				}},
				'e': {Description: "Pan to the end of the range", Handler: func(app *App) {
					lo, _ := app.ctrl.Geometry().PanBounds()
					app.ctrl.Pan(lo)
				}},
				'a': {Description: "Pan to the active item", Handler: func(app *App) {
					if app.requireActive() {
						app.selectAndReveal(app.ctrl.State().Active)
					}
				}},
			},
		},
		{
			Key:         '/',
			Description: "Search labels",
			Handler: func(app *App) {
				app.search.Start(app.items.Snapshot())
			},
		},
		{
			Key:         ':',
			Description: "Enter a command",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
	}
}

func (a *App) requireActive() bool {
	if !a.ctrl.State().IsActive() {
		a.SetStatus("No item selected")
		return false
	}
	return true
}

func (a *App) activeItem() (model.Item, bool) {
	state := a.ctrl.State()
	if !state.IsActive() {
		return model.Item{}, false
	}
	return a.items.Snapshot().At(state.Active)
}

func (a *App) panStep() int {
	return 10 * a.cfg.Display.UnitsPerColumn
}

func (a *App) panBy(delta int) {
	a.ctrl.Pan(a.ctrl.State().Offset + delta)
}

// selectAndReveal selects the item at index and pans so that its start is
// on screen
func (a *App) selectAndReveal(index int) {
	a.ctrl.Select(index)
	item, ok := a.items.Snapshot().At(index)
	if !ok {
		return
	}
	geom := a.ctrl.Geometry()
	offset := a.ctrl.State().Offset
	px := geom.PixelAt(item.Start, offset)
	if px < 0 || px >= geom.Width {
		a.ctrl.Pan(-item.Start)
	}
}

func (a *App) selectRelative(delta int) {
	n := a.items.Len()
	if n == 0 {
		return
	}
	state := a.ctrl.State()
	next := 0
	if state.IsActive() {
		next = (state.Active + delta + n) % n
	} else if delta < 0 {
		next = n - 1
	}
	a.selectAndReveal(next)
}

func (a *App) nudge(delta int) {
	item, ok := a.activeItem()
	if !ok {
		a.SetStatus("No item selected")
		return
	}
	a.ctrl.ChangeField(form.FieldStart, item.Start+delta)
	a.ctrl.ChangeField(form.FieldStop, item.Stop+delta)
}

func (a *App) changeLayer(delta int) {
	item, ok := a.activeItem()
	if !ok {
		a.SetStatus("No item selected")
		return
	}
	layer := item.Priority + delta
	if layer < 0 || layer >= a.ctrl.Geometry().Layers() {
		return
	}
	a.ctrl.ChangeField(form.FieldPriority, layer)
}

// editExternally opens the active item in the external editor and applies
// every changed field
func (a *App) editExternally() {
	item, ok := a.activeItem()
	if !ok {
		a.SetStatus("No item selected")
		return
	}
	if err := a.screen.Suspend(); err != nil {
		a.SetStatus("Failed to release terminal: " + err.Error())
		return
	}
	fields, changed, err := ui.EditItemInExternalEditor(item, ui.ResolveEditor(a.cfg.Get("editor")))
	if resumeErr := a.screen.Resume(); resumeErr != nil {
		a.logger.Error("failed to resume terminal", "err", resumeErr)
	}
	if err != nil {
		a.SetStatus(err.Error())
		return
	}
	if !changed {
		return
	}

	updated := item.Apply(fields)
	if updated.Start != item.Start {
		a.ctrl.ChangeField(form.FieldStart, updated.Start)
	}
	if updated.Stop != item.Stop {
		a.ctrl.ChangeField(form.FieldStop, updated.Stop)
	}
	if updated.Priority != item.Priority {
		a.ctrl.ChangeField(form.FieldPriority, updated.Priority)
	}
	if updated.Label != item.Label {
		a.ctrl.ChangeField(form.FieldLabel, updated.Label)
	}
	for k, v := range fields.Attributes {
		if item.Attributes[k] != v {
			a.ctrl.ChangeField(k, v)
		}
	}
	a.SetStatus(fmt.Sprintf("Edited item %s", strconv.Quote(updated.Label)))
}

func (a *App) dragMode(edge bool) editor.DragMode {
	if edge {
		return editor.DragResize
	}
	return editor.DragMove
}
