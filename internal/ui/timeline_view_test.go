package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-timeline/internal/editor"
	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/theme"
)

const viewTop = 1

func newTestScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim, theme.TokyoNight())
	require.NoError(t, err)
	sim.SetSize(width, height)
	t.Cleanup(func() { screen.Close() })
	return screen, sim
}

func rowText(sim tcell.SimulationScreen, y int) string {
	width, _ := sim.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func testSnapshot() model.Snapshot {
	return model.Snapshot{Items: []model.Item{
		{ID: "a", Start: 0, Stop: 100, Priority: 0, Label: "alpha"},
		{ID: "b", Start: 150, Stop: 300, Priority: 1, Label: "beta"},
	}}
}

func TestTimelineViewRows(t *testing.T) {
	view := NewTimelineView(viewTop, 10, 10)
	assert.Equal(t, 20, view.Rows(layout.Default()))
	assert.Equal(t, 800, view.ViewportWidth(80))
	assert.True(t, view.Contains(layout.Default(), 0, viewTop))
	assert.False(t, view.Contains(layout.Default(), 0, viewTop+20))
}

func TestTimelineViewHitTest(t *testing.T) {
	view := NewTimelineView(viewTop, 10, 10)
	geom := layout.Default()
	snap := testSnapshot()

	tests := []struct {
		name     string
		col, row int
		want     Hit
		found    bool
	}{
		{"body of first item", 5, viewTop + 3, Hit{Index: 0}, true},
		{"right edge of first item", 11, viewTop + 2, Hit{Index: 0, Edge: true}, true},
		{"second item on layer 1", 20, viewTop + 8, Hit{Index: 1}, true},
		{"gutter between layers", 5, viewTop + 5, Hit{}, false},
		{"empty space", 50, viewTop, Hit{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := view.HitTest(geom, snap, 0, tt.col, tt.row)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, hit)
		})
	}
}

func TestTimelineViewHitTestFollowsPan(t *testing.T) {
	view := NewTimelineView(viewTop, 10, 10)
	hit, ok := view.HitTest(layout.Default(), testSnapshot(), -100, 0, viewTop+3)
	require.True(t, ok)
	assert.Equal(t, 0, hit.Index)
}

func TestTimelineViewRender(t *testing.T) {
	screen, sim := newTestScreen(t, 80, 24)
	view := NewTimelineView(viewTop, 10, 10)
	geom := layout.Default().WithWidth(800)
	state := editor.NewState()
	state.Active = 1

	view.Render(screen, geom, testSnapshot(), state, nil)

	assert.Equal(t, "alpha", rowText(sim, viewTop+3)[3:8])
	assert.Equal(t, "beta", rowText(sim, viewTop+8)[18:22])

	r, _, _, _ := sim.GetContent(11, viewTop+2)
	assert.Equal(t, '▐', r)

	_, _, style, _ := sim.GetContent(20, viewTop+8)
	assert.Equal(t, screen.ItemStyle(true, false, false), style)
	_, _, style, _ = sim.GetContent(5, viewTop+2)
	assert.Equal(t, screen.ItemStyle(false, false, false), style)

	labels := rowText(sim, viewTop+18)
	assert.Equal(t, "0", labels[3:4])
	assert.Equal(t, "100", labels[13:16])

	assert.Equal(t, strings.Repeat("─", 80), rowText(sim, viewTop+19))
}

func TestTimelineViewRenderTruncatesLabels(t *testing.T) {
	screen, sim := newTestScreen(t, 80, 24)
	view := NewTimelineView(viewTop, 10, 10)
	snap := model.Snapshot{Items: []model.Item{{ID: "a", Start: 0, Stop: 60, Label: "a very long label"}}}

	view.Render(screen, layout.Default(), snap, editor.NewState(), nil)

	// 6 columns: label gets 4 of them, the handle one
	assert.Equal(t, "a v…▐", rowText(sim, viewTop+3)[3:3+len("a v…▐")])
}

func TestTimelineViewDragMove(t *testing.T) {
	view := NewTimelineView(viewTop, 10, 10)
	geom := layout.Default()
	snap := testSnapshot()

	view.BeginDrag(geom, snap, 0, editor.DragMove, 5, viewTop+3)
	view.MoveDrag(10, viewTop+8)

	preview, ok := view.Dragging()
	require.True(t, ok)
	assert.Equal(t, layout.Rect{X: 0, Y: 20, W: 100}, preview.Origin)
	assert.Equal(t, layout.Rect{X: 50, Y: 70, W: 100}, preview.Rect)

	// the preview is hit tested where it is drawn
	hit, found := view.HitTest(geom, snap, 0, 10, viewTop+8)
	require.True(t, found)
	assert.Equal(t, 0, hit.Index)

	done, ok := view.FinishDrag()
	require.True(t, ok)
	assert.Equal(t, preview, done)
	_, ok = view.Dragging()
	assert.False(t, ok)
}

func TestTimelineViewDragResize(t *testing.T) {
	view := NewTimelineView(viewTop, 10, 10)
	view.BeginDrag(layout.Default(), testSnapshot(), 0, editor.DragResize, 11, viewTop+2)
	view.MoveDrag(21, viewTop+9)

	preview, ok := view.Dragging()
	require.True(t, ok)
	assert.Equal(t, layout.Rect{X: 0, Y: 20, W: 200}, preview.Rect)

	view.CancelDrag()
	_, ok = view.Dragging()
	assert.False(t, ok)
}

func TestTimelineViewBeginDragIgnoresMissingItem(t *testing.T) {
	view := NewTimelineView(viewTop, 10, 10)
	view.BeginDrag(layout.Default(), testSnapshot(), 7, editor.DragMove, 0, 0)
	_, ok := view.Dragging()
	assert.False(t, ok)
}
