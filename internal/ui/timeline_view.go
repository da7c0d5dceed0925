package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-timeline/internal/editor"
	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
)

// TimelineView draws the layout on the terminal. One column covers
// UnitsPerColumn pixels and one row UnitsPerRow pixels, so the geometry
// stays in timeline units and only the view knows about cells.
type TimelineView struct {
	Top            int
	UnitsPerColumn int
	UnitsPerRow    int

	drag *DragPreview
}

// DragPreview is where a dragged item is drawn while the button is held
type DragPreview struct {
	Index  int
	Mode   editor.DragMode
	Origin layout.Rect
	Rect   layout.Rect

	startCol int
	startRow int
}

// Hit is the item under a cell
type Hit struct {
	Index int
	Edge  bool
}

// Matcher marks items that match the current search
type Matcher interface {
	IsMatch(index int) bool
}

// NewTimelineView creates a view starting at screen row top
func NewTimelineView(top, unitsPerColumn, unitsPerRow int) *TimelineView {
	return &TimelineView{
		Top:            top,
		UnitsPerColumn: max(1, unitsPerColumn),
		UnitsPerRow:    max(1, unitsPerRow),
	}
}

// Rows returns the number of screen rows the timeline takes
func (v *TimelineView) Rows(geom layout.Config) int {
	return ceilDiv(geom.Height, v.UnitsPerRow)
}

// ViewportWidth converts a column count into pixels
func (v *TimelineView) ViewportWidth(columns int) int {
	return columns * v.UnitsPerColumn
}

// Contains reports whether the cell lies inside the timeline area
func (v *TimelineView) Contains(geom layout.Config, col, row int) bool {
	return col >= 0 && row >= v.Top && row < v.Top+v.Rows(geom)
}

type box struct {
	col, row, w, h int
}

func (v *TimelineView) boxOf(geom layout.Config, rect layout.Rect, offset int) box {
	left := floorDiv(geom.PixelAt(rect.X, offset), v.UnitsPerColumn)
	right := floorDiv(geom.PixelAt(rect.X+max(rect.W, 0), offset), v.UnitsPerColumn)
	return box{
		col: left,
		row: v.Top + floorDiv(rect.Y, v.UnitsPerRow),
		w:   max(1, right-left),
		h:   max(1, ceilDiv(geom.LayerHeight, v.UnitsPerRow)),
	}
}

func (v *TimelineView) rectOf(geom layout.Config, snap model.Snapshot, index int) layout.Rect {
	if v.drag != nil && v.drag.Index == index {
		return v.drag.Rect
	}
	item := snap.Items[index]
	return geom.CalcPosition(item.Start, item.Stop, item.Priority)
}

// HitTest returns the item under the cell. Later items are drawn on top, so
// they win. The last column of an item is its resize edge.
func (v *TimelineView) HitTest(geom layout.Config, snap model.Snapshot, offset, col, row int) (Hit, bool) {
	for i := len(snap.Items) - 1; i >= 0; i-- {
		b := v.boxOf(geom, v.rectOf(geom, snap, i), offset)
		if col >= b.col && col < b.col+b.w && row >= b.row && row < b.row+b.h {
			return Hit{Index: i, Edge: b.w > 1 && col == b.col+b.w-1}, true
		}
	}
	return Hit{}, false
}

// BeginDrag starts a preview of the item at index, grabbed at a cell
func (v *TimelineView) BeginDrag(geom layout.Config, snap model.Snapshot, index int, mode editor.DragMode, col, row int) {
	item, ok := snap.At(index)
	if !ok {
		return
	}
	origin := geom.CalcPosition(item.Start, item.Stop, item.Priority)
	v.drag = &DragPreview{
		Index:    index,
		Mode:     mode,
		Origin:   origin,
		Rect:     origin,
		startCol: col,
		startRow: row,
	}
}

// MoveDrag follows the pointer to a cell
func (v *TimelineView) MoveDrag(col, row int) {
	d := v.drag
	if d == nil {
		return
	}
	dx := (col - d.startCol) * v.UnitsPerColumn
	dy := (row - d.startRow) * v.UnitsPerRow

	d.Rect = d.Origin
	switch d.Mode {
	case editor.DragResize:
		d.Rect.W = d.Origin.W + dx
	default:
		d.Rect.X = d.Origin.X + dx
		d.Rect.Y = d.Origin.Y + dy
	}
}

// Dragging returns the current preview
func (v *TimelineView) Dragging() (DragPreview, bool) {
	if v.drag == nil {
		return DragPreview{}, false
	}
	return *v.drag, true
}

// FinishDrag ends the preview and returns where the item was dropped
func (v *TimelineView) FinishDrag() (DragPreview, bool) {
	d, ok := v.Dragging()
	v.drag = nil
	return d, ok
}

// CancelDrag drops the preview
func (v *TimelineView) CancelDrag() {
	v.drag = nil
}

// Render draws the grid, the axis and the items
func (v *TimelineView) Render(screen *Screen, geom layout.Config, snap model.Snapshot, state editor.State, search Matcher) {
	v.renderGrid(screen, geom, state.Offset)

	for i, item := range snap.Items {
		if v.drag != nil && v.drag.Index == i {
			continue
		}
		active := i == state.Active
		match := search != nil && search.IsMatch(i)
		v.renderItem(screen, geom, v.rectOf(geom, snap, i), item.Label, screen.ItemStyle(active, false, match), state.Offset)
	}
	if v.drag != nil && v.drag.Index < len(snap.Items) {
		label := snap.Items[v.drag.Index].Label
		v.renderItem(screen, geom, v.drag.Rect, label, screen.ItemStyle(true, true, false), state.Offset)
	}
}

func (v *TimelineView) renderGrid(screen *Screen, geom layout.Config, offset int) {
	rows := v.Rows(geom)
	width := screen.GetWidth()

	for col := 0; col < width; col++ {
		t := geom.TimeAt(col*v.UnitsPerColumn, offset)
		style := tcell.StyleDefault
		if t >= geom.Range.Min && t < geom.Range.Max {
			style = screen.StripeStyle(floorDiv(t, layout.GridStep)%2 != 0)
		}
		for row := 0; row < rows; row++ {
			screen.SetCell(col, v.Top+row, ' ', style)
		}
	}

	labelRow := v.Top + floorDiv(geom.AxisY(), v.UnitsPerRow) - 1
	for _, stripe := range geom.Grid() {
		col := floorDiv(geom.PixelAt(stripe.X, offset), v.UnitsPerColumn) + 1
		if col < 0 || col >= width {
			continue
		}
		screen.DrawString(col, labelRow, strconv.Itoa(stripe.Label), screen.StripeStyle(stripe.Alt))
	}

	axisRow := v.Top + floorDiv(geom.AxisY(), v.UnitsPerRow)
	from := max(0, floorDiv(geom.PixelAt(geom.Range.Min, offset), v.UnitsPerColumn))
	to := min(width, floorDiv(geom.PixelAt(geom.Range.Max, offset), v.UnitsPerColumn))
	for col := from; col < to; col++ {
		screen.SetCell(col, axisRow, '─', screen.AxisStyle())
	}
}

func (v *TimelineView) renderItem(screen *Screen, geom layout.Config, rect layout.Rect, label string, style tcell.Style, offset int) {
	b := v.boxOf(geom, rect, offset)
	screen.Fill(b.col, b.row, b.w, b.h, ' ', style)
	if b.w > 1 {
		for row := b.row; row < b.row+b.h; row++ {
			screen.SetCell(b.col+b.w-1, row, '▐', screen.ItemHandleStyle(style))
		}
	}

	labelRow := b.row + (b.h-1)/2
	labelCol := b.col + 1
	if labelCol < 0 {
		// keep the label readable when the item starts left of the screen
		labelCol = 0
	}
	room := b.col + b.w - 1 - labelCol
	screen.DrawStringLimited(labelCol, labelRow, TruncateToWidthWithEllipsis(label, room), room, style)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
