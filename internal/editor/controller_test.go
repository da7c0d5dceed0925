package editor

import (
	"errors"
	"testing"

	"github.com/pstuifzand/tui-timeline/internal/form"
	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cursorRecorder struct {
	cursors []Cursor
}

func (r *cursorRecorder) SetCursor(c Cursor) {
	r.cursors = append(r.cursors, c)
}

type fixture struct {
	coll    *timeline.Collection
	binding *form.Binding
	cursor  *cursorRecorder
	ctrl    *Controller
}

func newFixture(t *testing.T, items ...model.Item) *fixture {
	t.Helper()
	f := &fixture{
		coll:   timeline.NewCollection(items),
		cursor: &cursorRecorder{},
	}
	f.binding = form.NewBinding(f.coll, nil)
	f.binding.LimitLayers(layout.Default().Layers())

	ctrl, err := New(Options{
		Geometry:   layout.Default(),
		Source:     f.coll,
		Dispatcher: f.coll,
		Form:       f.binding,
		Cursor:     f.cursor,
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	cancel := f.coll.Subscribe(func(model.Snapshot) { ctrl.Committed() })
	t.Cleanup(cancel)
	return f
}

func TestNewRejectsInvalidGeometry(t *testing.T) {
	coll := timeline.NewCollection(nil)
	geom := layout.Default()
	geom.LayerHeight = 0

	_, err := New(Options{Geometry: geom, Source: coll, Dispatcher: coll, Form: form.NewBinding(coll, nil)})
	assert.ErrorIs(t, err, layout.ErrInvalidConfig)

	_, err = New(Options{Geometry: layout.Default()})
	assert.Error(t, err)
}

func TestControllerAddActivatesNewItem(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Add(model.Partial{Label: "first"})

	require.Equal(t, 1, f.coll.Len())
	assert.Equal(t, 0, f.ctrl.State().Active)
	assert.Equal(t, "first", f.binding.Value("timeline[0].label"))
	assert.Equal(t, "100", f.binding.Value("timeline[0].stop"))
	assert.Empty(t, f.ctrl.State().Pending)
}

func TestControllerChangeFieldCommits(t *testing.T) {
	f := newFixture(t, model.Item{ID: "a", Start: 0, Stop: 100})
	f.ctrl.Select(0)

	f.ctrl.ChangeField(form.FieldStart, "25")
	f.ctrl.ChangeField(form.FieldLabel, "renamed")

	item := f.coll.Snapshot().Items[0]
	assert.Equal(t, 25, item.Start)
	assert.Equal(t, "renamed", item.Label)
	assert.Equal(t, 0, f.ctrl.State().Active)
}

func TestControllerFormStaysInSyncWithStore(t *testing.T) {
	f := newFixture(t, model.Item{ID: "a", Start: 0, Stop: 100, Priority: 1, Label: "keep"})
	f.ctrl.Select(0)
	version := f.coll.Version()

	f.ctrl.ChangeField(form.FieldLabel, "")
	f.ctrl.ChangeField(form.FieldPriority, "99")

	item := f.coll.Snapshot().Items[0]
	assert.Equal(t, "keep", item.Label)
	assert.Equal(t, 1, item.Priority)
	assert.Equal(t, "keep", f.binding.Value("timeline[0].label"))
	assert.Equal(t, "1", f.binding.Value("timeline[0].priority"))
	assert.Equal(t, version, f.coll.Version())
}

func TestControllerDuplicateAndDelete(t *testing.T) {
	f := newFixture(t, model.Item{ID: "a", Start: 10, Stop: 50, Priority: 1, Label: "x"})
	f.ctrl.Select(0)

	f.ctrl.DuplicateCurrent()

	snap := f.coll.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "x", snap.Items[1].Label)
	assert.NotEqual(t, "a", snap.Items[1].ID)
	assert.Equal(t, 1, f.ctrl.State().Active)

	f.ctrl.DeleteCurrent()

	assert.Equal(t, 1, f.coll.Len())
	assert.False(t, f.ctrl.State().IsActive())

	f.ctrl.DeleteCurrent()
	assert.Equal(t, 1, f.coll.Len(), "delete without selection does nothing")
}

func TestControllerDrag(t *testing.T) {
	f := newFixture(t, model.Item{ID: "a", Start: 0, Stop: 100}, model.Item{ID: "b", Start: 100, Stop: 200, Priority: 1})

	f.ctrl.StartDrag(1, DragMove)
	f.ctrl.EndDrag(1, layout.Rect{X: 300, Y: 120, W: 100})

	item := f.coll.Snapshot().Items[1]
	assert.Equal(t, model.Item{ID: "b", Start: 300, Stop: 400, Priority: 2}, item)
	assert.Equal(t, "300", f.binding.Value("timeline[1].start"))
	assert.Equal(t, []Cursor{CursorMove, CursorDefault}, f.cursor.cursors)
}

func TestControllerCancelledDragLeavesItem(t *testing.T) {
	original := model.Item{ID: "a", Start: 0, Stop: 100}
	f := newFixture(t, original)

	f.ctrl.StartDrag(0, DragResize)
	f.ctrl.CancelDrag()

	assert.Equal(t, original, f.coll.Snapshot().Items[0])
	assert.False(t, f.ctrl.State().IsDragging())
}

// deferredCollection applies mutations only when flushed, like a store that
// publishes changes asynchronously.
type deferredCollection struct {
	*timeline.Collection
	queued []func()
}

func (d *deferredCollection) Append(item model.Item) (int, error) {
	d.queued = append(d.queued, func() { _, _ = d.Collection.Append(item) })
	return -1, nil
}

func (d *deferredCollection) flush() {
	for _, fn := range d.queued {
		fn()
	}
	d.queued = nil
}

func TestControllerDeferredAppend(t *testing.T) {
	coll := &deferredCollection{Collection: timeline.NewCollection(nil)}
	ctrl, err := New(Options{
		Geometry:   layout.Default(),
		Source:     coll,
		Dispatcher: coll,
		Form:       form.NewBinding(coll, nil),
	})
	require.NoError(t, err)
	coll.Subscribe(func(model.Snapshot) { ctrl.Committed() })

	ctrl.Add(model.Partial{})
	ctrl.Add(model.Partial{})
	assert.False(t, ctrl.State().IsActive())
	assert.Len(t, ctrl.State().Pending, 2)

	coll.flush()

	assert.Equal(t, 2, coll.Len())
	assert.Equal(t, 1, ctrl.State().Active, "the last add wins")
	assert.Empty(t, ctrl.State().Pending)
}

type failingDispatcher struct {
	*timeline.Collection
}

func (failingDispatcher) Append(model.Item) (int, error) {
	return -1, errors.New("store is read-only")
}

func TestControllerRejectedAppend(t *testing.T) {
	coll := failingDispatcher{timeline.NewCollection(nil)}
	ctrl, err := New(Options{
		Geometry:   layout.Default(),
		Source:     coll,
		Dispatcher: coll,
		Form:       form.NewBinding(coll, nil),
	})
	require.NoError(t, err)

	ctrl.Add(model.Partial{})

	assert.Empty(t, ctrl.State().Pending)
	assert.False(t, ctrl.State().IsActive())
}

func TestControllerPanAfterMount(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Mount(500)
	f.ctrl.Pan(10000)

	assert.Equal(t, 80, f.ctrl.State().Offset)
	assert.Equal(t, 500, f.ctrl.Geometry().Width)
}
