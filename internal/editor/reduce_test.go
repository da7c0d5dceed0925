package editor

import (
	"testing"

	"github.com/pstuifzand/tui-timeline/internal/form"
	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(version uint64, items ...model.Item) Env {
	n := 0
	return Env{
		Geometry: layout.Default(),
		Snapshot: model.Snapshot{Version: version, Items: items},
		NewID: func() string {
			n++
			return "new-" + string(rune('0'+n))
		},
	}
}

func activeState(index int, id string) State {
	s := NewState()
	s.Active = index
	s.ActiveID = id
	return s
}

var (
	itemA = model.Item{ID: "a", Start: 0, Stop: 100, Priority: 0}
	itemB = model.Item{ID: "b", Start: 10, Stop: 50, Priority: 1, Label: "x"}
)

func TestSelectItem(t *testing.T) {
	env := testEnv(1, itemA, itemB)

	s, effects := Reduce(env, NewState(), SelectItem{Index: 1})

	assert.Equal(t, 1, s.Active)
	assert.Equal(t, "b", s.ActiveID)
	assert.Equal(t, []Effect{LoadForm{Path: "timeline[1]", Value: itemB}}, effects)

	again, effects := Reduce(env, s, SelectItem{Index: 1})
	assert.Equal(t, s, again)
	assert.Empty(t, effects, "reselecting the active item is a no-op")

	_, effects = Reduce(env, s, SelectItem{Index: 7})
	assert.Empty(t, effects)
}

func TestIdleCallsAreNoOps(t *testing.T) {
	env := testEnv(1, itemA)
	idle := NewState()

	for _, ev := range []Event{DeleteCurrent{}, DuplicateCurrent{}, ChangeField{Field: "start", Value: 3}} {
		s, effects := Reduce(env, idle, ev)
		assert.Equal(t, idle, s, "%T", ev)
		assert.Empty(t, effects, "%T", ev)
	}
}

func TestDeleteCurrent(t *testing.T) {
	env := testEnv(1, itemA, itemB)

	s, effects := Reduce(env, activeState(1, "b"), DeleteCurrent{})

	assert.False(t, s.IsActive())
	assert.Equal(t, []Effect{RemoveItem{Ref: model.Ref{Index: 1, ID: "b"}}}, effects)
}

func TestChangeField(t *testing.T) {
	env := testEnv(1, itemA, itemB)

	_, effects := Reduce(env, activeState(1, "b"), ChangeField{Field: form.FieldLabel, Value: "y"})

	assert.Equal(t, []Effect{ChangeForm{Path: "timeline[1].label", Value: "y"}}, effects)
}

func TestDragEndConvertsRect(t *testing.T) {
	env := testEnv(1, itemA, itemB)

	s, effects := Reduce(env, NewState(), DragEnd{Index: 0, Rect: layout.Rect{X: 30, Y: 72, W: 60}})

	assert.False(t, s.IsDragging())
	assert.Equal(t, []Effect{
		UpdateItem{
			Ref:    model.Ref{Index: 0, ID: "a"},
			Fields: model.Partial{Start: model.Int(30), Stop: model.Int(90), Priority: model.Int(1)},
		},
		LoadForm{Path: "timeline[0].start", Value: 30},
		LoadForm{Path: "timeline[0].stop", Value: 90},
		LoadForm{Path: "timeline[0].priority", Value: 1},
	}, effects)
}

func TestDragEndClampsNegativeWidth(t *testing.T) {
	env := testEnv(1, itemA)

	_, effects := Reduce(env, NewState(), DragEnd{Index: 0, Rect: layout.Rect{X: 30, Y: 20, W: -15}})

	require.NotEmpty(t, effects)
	update := effects[0].(UpdateItem)
	assert.Equal(t, 30, *update.Fields.Stop)
}

func TestDragLifecycle(t *testing.T) {
	env := testEnv(1, itemA, itemB)

	s, effects := Reduce(env, NewState(), DragStart{Index: 1, Mode: DragResize})
	require.True(t, s.IsDragging())
	assert.Equal(t, 1, s.Active, "drag selects the item")
	assert.Equal(t, CursorResize, s.Cursor)
	assert.Contains(t, effects, SetCursor{Cursor: CursorResize})

	s, effects = Reduce(env, s, DragEnd{Index: 1, Rect: layout.Rect{X: 10, Y: 20, W: 200}})
	assert.False(t, s.IsDragging())
	assert.Equal(t, CursorDefault, s.Cursor)
	assert.Contains(t, effects, SetCursor{Cursor: CursorDefault})
	assert.Contains(t, effects, UpdateItem{
		Ref:    model.Ref{Index: 1, ID: "b"},
		Fields: model.Partial{Start: model.Int(10), Stop: model.Int(210), Priority: model.Int(0)},
	})
}

func TestDragEndFollowsShiftedItem(t *testing.T) {
	s, _ := Reduce(testEnv(1, itemA, itemB), NewState(), DragStart{Index: 1, Mode: DragMove})

	// Item a was removed while dragging; b is now at index 0.
	s, effects := Reduce(testEnv(2, itemB), s, DragEnd{Index: 1, Rect: layout.Rect{X: 5, Y: 20, W: 10}})

	assert.Equal(t, 0, s.Active)
	assert.Contains(t, effects, UpdateItem{
		Ref:    model.Ref{Index: 0, ID: "b"},
		Fields: model.Partial{Start: model.Int(5), Stop: model.Int(15), Priority: model.Int(0)},
	})
	assert.Contains(t, effects, LoadForm{Path: "timeline[0].start", Value: 5})
}

func TestDragEndRejectsVanishedItem(t *testing.T) {
	s, _ := Reduce(testEnv(1, itemA, itemB), NewState(), DragStart{Index: 1, Mode: DragMove})

	s, effects := Reduce(testEnv(2, itemA), s, DragEnd{Index: 1, Rect: layout.Rect{X: 5, Y: 20, W: 10}})

	assert.False(t, s.IsDragging())
	for _, e := range effects {
		assert.IsType(t, SetCursor{}, e)
	}
}

func TestDragEndOutOfRangeWithoutDrag(t *testing.T) {
	_, effects := Reduce(testEnv(1, itemA), NewState(), DragEnd{Index: 3, Rect: layout.Rect{X: 5, Y: 20, W: 10}})

	assert.Empty(t, effects)
}

func TestDragCancel(t *testing.T) {
	env := testEnv(1, itemA)
	s, _ := Reduce(env, NewState(), DragStart{Index: 0, Mode: DragMove})

	s, effects := Reduce(env, s, DragCancel{})

	assert.False(t, s.IsDragging())
	assert.Equal(t, []Effect{SetCursor{Cursor: CursorDefault}}, effects)
	assert.Equal(t, 0, s.Active, "selection survives a cancelled drag")
}

func TestAddIsActivatedOnCommit(t *testing.T) {
	s, effects := Reduce(testEnv(4, itemA), NewState(), Add{})

	require.Len(t, effects, 1)
	appended := effects[0].(AppendItem).Item
	assert.Equal(t, model.Item{ID: "new-1", Start: 100, Stop: 200, Priority: 1}, appended)
	assert.False(t, s.IsActive(), "not active before the append is visible")
	require.Len(t, s.Pending, 1)

	// A notification for an older change must not resolve the add.
	s, effects = Reduce(testEnv(4, itemA), s, Committed{})
	assert.False(t, s.IsActive())
	assert.Empty(t, effects)

	s, effects = Reduce(testEnv(5, itemA, appended), s, Committed{})
	assert.Equal(t, 1, s.Active)
	assert.Equal(t, "new-1", s.ActiveID)
	assert.Empty(t, s.Pending)
	assert.Equal(t, []Effect{LoadForm{Path: "timeline[1]", Value: appended}}, effects)
}

func TestRapidAddsActivateTheLast(t *testing.T) {
	env := testEnv(1, itemA)
	s, e1 := Reduce(env, NewState(), Add{})
	s, e2 := Reduce(env, s, Add{})
	first := e1[0].(AppendItem).Item
	second := e2[0].(AppendItem).Item
	require.NotEqual(t, first.ID, second.ID)

	// Both appends land, in reverse order.
	s, _ = Reduce(testEnv(3, itemA, second, first), s, Committed{})

	assert.Equal(t, 1, s.Active)
	assert.Equal(t, second.ID, s.ActiveID)
	assert.Empty(t, s.Pending)
}

func TestAddRejected(t *testing.T) {
	s, effects := Reduce(testEnv(1), NewState(), Add{})
	id := effects[0].(AppendItem).Item.ID

	s, _ = Reduce(testEnv(1), s, AddRejected{ItemID: id})

	assert.Empty(t, s.Pending)
}

func TestDuplicateCurrent(t *testing.T) {
	env := testEnv(1, itemB)

	s, effects := Reduce(env, activeState(0, "b"), DuplicateCurrent{})

	require.Len(t, effects, 1)
	dup := effects[0].(AppendItem).Item
	assert.Equal(t, "x", dup.Label)
	assert.NotEqual(t, "b", dup.ID)
	assert.Equal(t, 50, dup.Start)
	assert.Equal(t, 150, dup.Stop)
	assert.Equal(t, 2, dup.Priority)
	assert.Equal(t, 0, s.Active, "the original stays active until the copy is committed")
}

func TestCommittedFollowsActiveItem(t *testing.T) {
	s := activeState(1, "b")

	s, _ = Reduce(testEnv(2, itemB, itemA), s, Committed{})
	assert.Equal(t, 0, s.Active)

	s, _ = Reduce(testEnv(3, itemA), s, Committed{})
	assert.False(t, s.IsActive())
	assert.Empty(t, s.ActiveID)
}

func TestPanClamp(t *testing.T) {
	env := testEnv(1)
	s, _ := Reduce(env, NewState(), Mount{Width: 500})

	s, _ = Reduce(env, s, Pan{Offset: -99999})
	assert.Equal(t, -1520, s.Offset)

	s, _ = Reduce(env, s, Pan{Offset: 99999})
	assert.Equal(t, 80, s.Offset)

	s, _ = Reduce(env, s, Pan{Offset: -40})
	assert.Equal(t, -40, s.Offset)
}

func TestMountOnlyOnce(t *testing.T) {
	env := testEnv(1)
	s, _ := Reduce(env, NewState(), Mount{Width: 500})
	s, _ = Reduce(env, s, Mount{Width: 900})

	assert.Equal(t, 500, s.ViewportWidth)
}

func TestHover(t *testing.T) {
	env := testEnv(1, itemA)

	s, effects := Reduce(env, NewState(), Hover{Index: 0})
	assert.Equal(t, CursorPointer, s.Cursor)
	assert.Equal(t, []Effect{SetCursor{Cursor: CursorPointer}}, effects)

	s, _ = Reduce(env, s, Hover{Index: 0, Edge: true})
	assert.Equal(t, CursorResize, s.Cursor)

	s, _ = Reduce(env, s, Hover{Index: None})
	assert.Equal(t, CursorDefault, s.Cursor)

	dragging, _ := Reduce(env, s, DragStart{Index: 0, Mode: DragMove})
	after, effects := Reduce(env, dragging, Hover{Index: None})
	assert.Equal(t, CursorMove, after.Cursor)
	assert.Empty(t, effects)
}
