package app

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-timeline/internal/editor"
)

// HandleEvent processes one terminal event. The overlays that are open get
// the event first: backup selector, help, command line, search, item form.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		if !a.help.IsVisible() && !a.backupSelector.IsVisible() {
			a.handleMouse(ev)
		}
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	a.splash.Hide()

	switch {
	case a.backupSelector.IsVisible():
		if backup, ok := a.backupSelector.HandleKey(ev); ok {
			a.restoreBackup(backup)
		}
		return
	case a.help.IsVisible():
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' || ev.Rune() == 'q' {
			a.help.Hide()
		}
		return
	case a.command.IsActive():
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	case a.search.IsActive():
		if a.search.HandleKey(ev) {
			if idx, ok := a.search.Current(); ok {
				a.selectAndReveal(idx)
			}
		}
		return
	case a.itemForm.IsEditing():
		a.handleFormKey(ev)
		return
	}

	if ev.Key() == tcell.KeyEscape && a.ctrl.State().IsDragging() {
		a.cancelDrag()
		return
	}
	a.handleKeypress(ev)
}

func (a *App) handleFormKey(ev *tcell.EventKey) {
	state := a.ctrl.State()
	if !state.IsActive() {
		a.itemForm.Cancel()
		return
	}
	field, value, changed := a.itemForm.HandleKey(state.Active, ev)
	if changed {
		a.ctrl.ChangeField(field, value)
	}
}

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.pendingKey != 0 {
		prefix := a.pendingKey
		a.pendingKey = 0
		for _, kb := range a.keybindings {
			if kb.Key == prefix {
				if seq, ok := kb.Sequences[ev.Rune()]; ok {
					seq.Handler(a)
				}
				return
			}
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlS:
		a.saveWithStatus()
		return
	case tcell.KeyTab, tcell.KeyBacktab, tcell.KeyEnter:
		if a.ctrl.State().IsActive() {
			a.handleFormKey(ev)
		}
		return
	case tcell.KeyDelete:
		if a.requireActive() {
			a.ctrl.DeleteCurrent()
		}
		return
	case tcell.KeyLeft:
		a.panBy(a.panStep())
		return
	case tcell.KeyRight:
		a.panBy(-a.panStep())
		return
	case tcell.KeyDown:
		a.selectRelative(1)
		return
	case tcell.KeyUp:
		a.selectRelative(-1)
		return
	case tcell.KeyRune:
	default:
		return
	}

	for _, kb := range a.keybindings {
		if kb.Key != ev.Rune() {
			continue
		}
		if kb.Sequences != nil {
			a.pendingKey = kb.Key
			return
		}
		kb.Handler(a)
		return
	}
}

func (a *App) saveWithStatus() {
	if err := a.Save(); err != nil {
		a.SetStatus("Failed to save: " + err.Error())
		return
	}
	a.SetStatus(fmt.Sprintf("Saved %s", a.filePath))
}

// handleMouse turns button 1 presses, motion and releases into drags.
// Pressing on empty space pans the view instead.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	geom := a.ctrl.Geometry()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0, buttons&tcell.WheelLeft != 0:
		a.panBy(a.panStep())
		return
	case buttons&tcell.WheelDown != 0, buttons&tcell.WheelRight != 0:
		a.panBy(-a.panStep())
		return
	}

	if buttons&tcell.Button1 != 0 {
		if a.pressed {
			a.dragTo(col, row)
			return
		}
		a.pressed = true
		a.press(col, row)
		return
	}

	if a.pressed {
		a.pressed = false
		a.release(col, row)
		return
	}

	// plain motion
	snap := a.items.Snapshot()
	if hit, ok := a.view.HitTest(geom, snap, a.ctrl.State().Offset, col, row); ok {
		a.ctrl.Hover(hit.Index, hit.Edge)
	} else {
		a.ctrl.Hover(editor.None, false)
	}
}

func (a *App) press(col, row int) {
	geom := a.ctrl.Geometry()
	if !a.view.Contains(geom, col, row) {
		return
	}
	snap := a.items.Snapshot()
	offset := a.ctrl.State().Offset
	hit, ok := a.view.HitTest(geom, snap, offset, col, row)
	if !ok {
		a.panning = &panGrab{col: col, offset: offset}
		return
	}
	mode := a.dragMode(hit.Edge)
	a.ctrl.StartDrag(hit.Index, mode)
	a.view.BeginDrag(geom, snap, hit.Index, mode, col, row)
}

func (a *App) dragTo(col, row int) {
	if a.panning != nil {
		a.ctrl.Pan(a.panning.offset + (col-a.panning.col)*a.cfg.Display.UnitsPerColumn)
		return
	}
	a.view.MoveDrag(col, row)
}

func (a *App) release(col, row int) {
	if a.panning != nil {
		a.panning = nil
		return
	}
	preview, ok := a.view.FinishDrag()
	if !ok {
		return
	}
	// A click without movement only selects; a drop outside the timeline
	// aborts the drag.
	if preview.Rect == preview.Origin || !a.view.Contains(a.ctrl.Geometry(), col, row) {
		a.ctrl.CancelDrag()
		return
	}
	a.ctrl.EndDrag(preview.Index, preview.Rect)
}

func (a *App) cancelDrag() {
	a.view.CancelDrag()
	a.pressed = false
	a.panning = nil
	a.ctrl.CancelDrag()
	a.SetStatus("Drag cancelled")
}

func sortedRunes[V any](m map[rune]V) []rune {
	return slices.Sorted(maps.Keys(m))
}
