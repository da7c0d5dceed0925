package editor

import (
	"fmt"
	"log/slog"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/placement"
)

// Source gives read access to the current item collection
type Source interface {
	Snapshot() model.Snapshot
}

// Dispatcher carries mutation requests to the item collection. Changes are
// not assumed to be visible in Source until Committed is delivered.
type Dispatcher interface {
	Append(item model.Item) (int, error)
	Update(ref model.Ref, fields model.Partial) error
	Remove(ref model.Ref) error
}

// FormBinding is the editable field view of the items
type FormBinding interface {
	Load(path string, value any)
	Change(path string, value any)
}

// CursorSink shows the pointer style
type CursorSink interface {
	SetCursor(cursor Cursor)
}

// Options configures a Controller
type Options struct {
	Geometry   layout.Config
	Placement  placement.Options
	Source     Source
	Dispatcher Dispatcher
	Form       FormBinding
	Cursor     CursorSink
	Logger     *slog.Logger
	NewID      func() string
}

// Controller runs Reduce against its current state and performs the
// resulting effects. Events raised while effects are running (for example a
// synchronous commit notification) are queued and handled afterwards.
type Controller struct {
	opts   Options
	state  State
	queue  []Event
	busy   bool
	logger *slog.Logger
}

// New creates a controller. It fails when the geometry is invalid.
func New(opts Options) (*Controller, error) {
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	if opts.Source == nil || opts.Dispatcher == nil || opts.Form == nil {
		return nil, fmt.Errorf("controller needs a source, a dispatcher and a form binding")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		opts:   opts,
		state:  NewState(),
		logger: logger,
	}, nil
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Geometry returns the layout config with the mounted viewport width
func (c *Controller) Geometry() layout.Config {
	return c.opts.Geometry.WithWidth(c.state.ViewportWidth)
}

// Handle processes ev and everything it causes to be queued
func (c *Controller) Handle(ev Event) {
	c.queue = append(c.queue, ev)
	if c.busy {
		return
	}
	c.busy = true
	defer func() { c.busy = false }()

	for len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		c.step(next)
	}
}

func (c *Controller) step(ev Event) {
	env := Env{
		Geometry:  c.opts.Geometry,
		Snapshot:  c.opts.Source.Snapshot(),
		Placement: c.opts.Placement,
		NewID:     c.opts.NewID,
	}

	prev := c.state
	next, effects := Reduce(env, c.state, ev)
	c.state = next
	if prev.Active != next.Active {
		c.logger.Debug("active item changed", "from", prev.String(), "to", next.String(), "event", fmt.Sprintf("%T", ev))
	}

	for _, effect := range effects {
		c.perform(effect)
	}
}

func (c *Controller) perform(effect Effect) {
	switch e := effect.(type) {
	case LoadForm:
		c.opts.Form.Load(e.Path, e.Value)
	case ChangeForm:
		c.opts.Form.Change(e.Path, e.Value)
	case AppendItem:
		if _, err := c.opts.Dispatcher.Append(e.Item); err != nil {
			c.logger.Error("failed to append item", "id", e.Item.ID, "err", err)
			c.Handle(AddRejected{ItemID: e.Item.ID})
		}
	case UpdateItem:
		if err := c.opts.Dispatcher.Update(e.Ref, e.Fields); err != nil {
			c.logger.Error("failed to update item", "index", e.Ref.Index, "id", e.Ref.ID, "err", err)
		}
	case RemoveItem:
		if err := c.opts.Dispatcher.Remove(e.Ref); err != nil {
			c.logger.Error("failed to remove item", "index", e.Ref.Index, "id", e.Ref.ID, "err", err)
		}
	case SetCursor:
		if c.opts.Cursor != nil {
			c.opts.Cursor.SetCursor(e.Cursor)
		}
	}
}

// Mount records the measured viewport width
func (c *Controller) Mount(width int) { c.Handle(Mount{Width: width}) }

// Select makes the item at index active
func (c *Controller) Select(index int) { c.Handle(SelectItem{Index: index}) }

// StartDrag begins a drag of the item at index
func (c *Controller) StartDrag(index int, mode DragMode) {
	c.Handle(DragStart{Index: index, Mode: mode})
}

// EndDrag finishes a drag with the final pixel rect of the item
func (c *Controller) EndDrag(index int, rect layout.Rect) {
	c.Handle(DragEnd{Index: index, Rect: rect})
}

// CancelDrag aborts the current drag
func (c *Controller) CancelDrag() { c.Handle(DragCancel{}) }

// ChangeField edits a field of the active item
func (c *Controller) ChangeField(field string, value any) {
	c.Handle(ChangeField{Field: field, Value: value})
}

// Add appends a new item; it becomes active once the collection shows it
func (c *Controller) Add(partial model.Partial) { c.Handle(Add{Partial: partial}) }

// DuplicateCurrent appends a copy of the active item
func (c *Controller) DuplicateCurrent() { c.Handle(DuplicateCurrent{}) }

// DeleteCurrent removes the active item
func (c *Controller) DeleteCurrent() { c.Handle(DeleteCurrent{}) }

// Pan moves the viewport to offset
func (c *Controller) Pan(offset int) { c.Handle(Pan{Offset: offset}) }

// Hover updates the cursor for the pointer position
func (c *Controller) Hover(index int, edge bool) { c.Handle(Hover{Index: index, Edge: edge}) }

// Committed tells the controller that the collection changed
func (c *Controller) Committed() { c.Handle(Committed{}) }
