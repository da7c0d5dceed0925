// Package timeline holds the live, versioned item collection the editor
// mutates. A Collection is owned by the application's event loop and is not
// safe for concurrent use.
package timeline

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

var (
	// ErrIndexOutOfRange is returned when a ref points past the collection
	ErrIndexOutOfRange = errors.New("item index out of range")
	// ErrStaleRef is returned when a ref's ID is no longer in the collection
	ErrStaleRef = errors.New("item no longer exists")
)

// Collection is an ordered sequence of items with a version that increases
// on every committed change
type Collection struct {
	items   []model.Item
	version uint64
	subs    map[int]func(model.Snapshot)
	nextSub int
}

// NewCollection creates a collection holding a copy of items
func NewCollection(items []model.Item) *Collection {
	c := &Collection{subs: make(map[int]func(model.Snapshot))}
	c.items = cloneItems(items)
	return c
}

// FromTimeline creates a collection from a loaded document
func FromTimeline(t *model.Timeline) *Collection {
	items := make([]model.Item, 0, len(t.Items))
	for _, item := range t.Items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			item.ID = model.NewID()
		}
		items = append(items, *item)
	}
	return NewCollection(items)
}

// Snapshot returns an immutable copy of the current items
func (c *Collection) Snapshot() model.Snapshot {
	return model.Snapshot{
		Version: c.version,
		Items:   cloneItems(c.items),
	}
}

// Version returns the current version
func (c *Collection) Version() uint64 {
	return c.version
}

// Len returns the number of items
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns the items as document entries
func (c *Collection) Items() []*model.Item {
	out := make([]*model.Item, len(c.items))
	for i := range c.items {
		item := c.items[i].Clone()
		out[i] = &item
	}
	return out
}

// Subscribe registers fn to be called with the new snapshot after every
// change. The returned function removes the subscription.
func (c *Collection) Subscribe(fn func(model.Snapshot)) func() {
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		delete(c.subs, id)
	}
}

// Append adds item at the end and returns its index
func (c *Collection) Append(item model.Item) (int, error) {
	if item.ID == "" {
		item.ID = model.NewID()
	}
	if slices.ContainsFunc(c.items, func(it model.Item) bool { return it.ID == item.ID }) {
		return -1, fmt.Errorf("duplicate item id %q", item.ID)
	}
	c.items = append(c.items, item.Clone())
	c.commit()
	return len(c.items) - 1, nil
}

// Update applies the present fields of fields to the referenced item
func (c *Collection) Update(ref model.Ref, fields model.Partial) error {
	idx, err := c.resolve(ref)
	if err != nil {
		return err
	}
	c.items[idx] = c.items[idx].Apply(fields)
	c.commit()
	return nil
}

// Remove deletes the referenced item; later items shift down by one
func (c *Collection) Remove(ref model.Ref) error {
	idx, err := c.resolve(ref)
	if err != nil {
		return err
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	c.commit()
	return nil
}

// Replace swaps the whole item set, e.g. after an import
func (c *Collection) Replace(items []model.Item) {
	c.items = cloneItems(items)
	c.commit()
}

func (c *Collection) resolve(ref model.Ref) (int, error) {
	snap := model.Snapshot{Items: c.items}
	idx := snap.Resolve(ref)
	if idx >= 0 {
		return idx, nil
	}
	if ref.ID != "" {
		return -1, fmt.Errorf("%w: %s", ErrStaleRef, ref.ID)
	}
	return -1, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, ref.Index, len(c.items))
}

func (c *Collection) commit() {
	c.version++
	if len(c.subs) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, id := range slices.Sorted(maps.Keys(c.subs)) {
		if fn, ok := c.subs[id]; ok {
			fn(snap)
		}
	}
}

func cloneItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
