package editor

import (
	"slices"

	"github.com/pstuifzand/tui-timeline/internal/form"
	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/placement"
)

// Env is everything Reduce reads besides the state itself
type Env struct {
	Geometry  layout.Config
	Snapshot  model.Snapshot
	Placement placement.Options
	NewID     func() string
}

func (env Env) newID() string {
	if env.NewID == nil {
		return model.NewID()
	}
	return env.NewID()
}

// Reduce applies ev to s. It never fails: calls that make no sense in the
// current state leave it unchanged and produce no effects.
func Reduce(env Env, s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Mount:
		if s.ViewportWidth == 0 && ev.Width > 0 {
			s.ViewportWidth = ev.Width
			s.Offset = env.Geometry.WithWidth(ev.Width).ClampPan(s.Offset)
		}
		return s, nil

	case SelectItem:
		return selectItem(env, s, ev.Index)

	case DragStart:
		item, ok := env.Snapshot.At(ev.Index)
		if !ok {
			return s, nil
		}
		s, effects := selectItem(env, s, ev.Index)
		s.Drag = &Drag{
			ItemID:  item.ID,
			Index:   ev.Index,
			Mode:    ev.Mode,
			Version: env.Snapshot.Version,
		}
		return withCursor(s, effects, ev.Mode.cursor())

	case DragEnd:
		return dragEnd(env, s, ev)

	case DragCancel:
		s.Drag = nil
		return withCursor(s, nil, CursorDefault)

	case ChangeField:
		if !s.IsActive() {
			return s, nil
		}
		return s, []Effect{ChangeForm{Path: form.FieldPath(s.Active, ev.Field), Value: ev.Value}}

	case Add:
		return add(env, s, ev.Partial)

	case DuplicateCurrent:
		if !s.IsActive() {
			return s, nil
		}
		idx := env.Snapshot.Resolve(model.Ref{Index: s.Active, ID: s.ActiveID})
		if idx == None {
			return s, nil
		}
		return add(env, s, env.Snapshot.Items[idx].Duplicate())

	case DeleteCurrent:
		if !s.IsActive() {
			return s, nil
		}
		ref := model.Ref{Index: s.Active, ID: s.ActiveID}
		return s.idle(), []Effect{RemoveItem{Ref: ref}}

	case Committed:
		return committed(env, s)

	case AddRejected:
		s.Pending = slices.DeleteFunc(slices.Clone(s.Pending), func(p PendingAdd) bool {
			return p.ItemID == ev.ItemID
		})
		return s, nil

	case Pan:
		s.Offset = env.Geometry.WithWidth(s.ViewportWidth).ClampPan(ev.Offset)
		return s, nil

	case Hover:
		if s.IsDragging() {
			return s, nil
		}
		cursor := CursorDefault
		if _, ok := env.Snapshot.At(ev.Index); ok {
			cursor = CursorPointer
			if ev.Edge {
				cursor = CursorResize
			}
		}
		return withCursor(s, nil, cursor)
	}

	return s, nil
}

func selectItem(env Env, s State, index int) (State, []Effect) {
	item, ok := env.Snapshot.At(index)
	if !ok || index == s.Active {
		return s, nil
	}
	s.Active = index
	s.ActiveID = item.ID
	return s, []Effect{LoadForm{Path: form.ItemPath(index), Value: item}}
}

func dragEnd(env Env, s State, ev DragEnd) (State, []Effect) {
	drag := s.Drag
	s.Drag = nil
	s, cursorEffects := withCursor(s, nil, CursorDefault)

	index := ev.Index
	var id string
	if drag != nil && drag.Index == ev.Index {
		// The collection moved on since the drag started; follow the item.
		id = drag.ItemID
		index = env.Snapshot.Resolve(model.Ref{Index: ev.Index, ID: id})
	} else if item, ok := env.Snapshot.At(index); ok {
		id = item.ID
	} else {
		index = None
	}
	if index == None {
		return s, cursorEffects
	}

	start := ev.Rect.X
	stop := ev.Rect.X + max(ev.Rect.W, 0)
	priority := env.Geometry.ClosestLayer(ev.Rect.Y)

	if s.ActiveID != "" && s.ActiveID == id {
		s.Active = index
	}

	effects := append(cursorEffects,
		UpdateItem{
			Ref: model.Ref{Index: index, ID: id},
			Fields: model.Partial{
				Start:    model.Int(start),
				Stop:     model.Int(stop),
				Priority: model.Int(priority),
			},
		},
		LoadForm{Path: form.FieldPath(index, form.FieldStart), Value: start},
		LoadForm{Path: form.FieldPath(index, form.FieldStop), Value: stop},
		LoadForm{Path: form.FieldPath(index, form.FieldPriority), Value: priority},
	)
	return s, effects
}

func add(env Env, s State, partial model.Partial) (State, []Effect) {
	if partial.ID == "" {
		partial.ID = env.newID()
	}
	item := placement.Suggest(env.Snapshot.Items, partial, env.Geometry, env.Placement)

	s.Pending = append(slices.Clone(s.Pending), PendingAdd{
		ItemID: item.ID,
		After:  env.Snapshot.Version,
	})
	return s, []Effect{AppendItem{Item: item}}
}

// committed re-derives the active index from the stable ID and activates the
// most recently requested add that has become visible.
func committed(env Env, s State) (State, []Effect) {
	var effects []Effect

	if s.ActiveID != "" {
		idx := env.Snapshot.IndexOf(s.ActiveID)
		if idx == None {
			s = s.idle()
		} else {
			s.Active = idx
		}
	}

	resolved := None
	var remaining []PendingAdd
	for _, p := range s.Pending {
		idx := env.Snapshot.IndexOf(p.ItemID)
		if idx != None && env.Snapshot.Version > p.After {
			resolved = idx
			continue
		}
		remaining = append(remaining, p)
	}
	s.Pending = remaining

	if resolved != None {
		item := env.Snapshot.Items[resolved]
		if resolved != s.Active || item.ID != s.ActiveID {
			s.Active = resolved
			s.ActiveID = item.ID
			effects = append(effects, LoadForm{Path: form.ItemPath(resolved), Value: item})
		}
	}

	return s, effects
}

func withCursor(s State, effects []Effect, cursor Cursor) (State, []Effect) {
	if s.Cursor == cursor {
		return s, effects
	}
	s.Cursor = cursor
	return s, append(effects, SetCursor{Cursor: cursor})
}
