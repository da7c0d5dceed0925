// Package model contains the model for the timeline
package model

import (
	"maps"

	"github.com/google/uuid"
)

// Item represents a single time-ranged entry on the timeline
type Item struct {
	ID         string            `json:"id" yaml:"id"`
	Start      int               `json:"start" yaml:"start"`
	Stop       int               `json:"stop" yaml:"stop"`
	Priority   int               `json:"priority" yaml:"priority"`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Partial is an item whose placement fields may be absent (nil)
type Partial struct {
	ID         string
	Start      *int
	Stop       *int
	Priority   *int
	Label      string
	Attributes map[string]string
}

// Ref addresses an item by its position, with the stable ID as a fallback
// for when the position has shifted underneath the caller.
type Ref struct {
	Index int
	ID    string
}

// Snapshot is an immutable view of the item collection at one version
type Snapshot struct {
	Version uint64
	Items   []Item
}

// Timeline represents the entire timeline document
type Timeline struct {
	Title string  `json:"title" yaml:"title"`
	Items []*Item `json:"items" yaml:"items"`

	// OriginalFilename is only set on backups
	OriginalFilename string `json:"original_filename,omitempty" yaml:"-"`
}

// NewTimeline creates a new, empty timeline with the given title
func NewTimeline(title string) *Timeline {
	return &Timeline{
		Title: title,
		Items: make([]*Item, 0),
	}
}

// NewID returns a fresh stable item identifier
func NewID() string {
	return uuid.NewString()
}

// Int returns a pointer to v, for filling Partial fields
func Int(v int) *int {
	return &v
}

// Len returns the length of the item (stop - start)
func (i Item) Len() int {
	return i.Stop - i.Start
}

// Clone returns a deep copy of the item
func (i Item) Clone() Item {
	c := i
	if i.Attributes != nil {
		c.Attributes = maps.Clone(i.Attributes)
	}
	return c
}

// Duplicate returns a partial carrying everything except identity and placement,
// so that a fresh position gets suggested for the copy.
func (i Item) Duplicate() Partial {
	p := Partial{Label: i.Label}
	if i.Attributes != nil {
		p.Attributes = maps.Clone(i.Attributes)
	}
	return p
}

// Fields returns a partial with all placement fields of the item present
func (i Item) Fields() Partial {
	return Partial{
		ID:         i.ID,
		Start:      Int(i.Start),
		Stop:       Int(i.Stop),
		Priority:   Int(i.Priority),
		Label:      i.Label,
		Attributes: i.Attributes,
	}
}

// Apply returns a copy of the item with the present fields of p applied.
// Label and attributes are only overwritten when set on p.
func (i Item) Apply(p Partial) Item {
	out := i.Clone()
	if p.Start != nil {
		out.Start = *p.Start
	}
	if p.Stop != nil {
		out.Stop = *p.Stop
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Label != "" {
		out.Label = p.Label
	}
	if len(p.Attributes) > 0 {
		if out.Attributes == nil {
			out.Attributes = make(map[string]string, len(p.Attributes))
		}
		maps.Copy(out.Attributes, p.Attributes)
	}
	return out
}

// Len returns the number of items in the snapshot
func (s Snapshot) Len() int {
	return len(s.Items)
}

// At returns the item at index, or false when the index is out of range
func (s Snapshot) At(index int) (Item, bool) {
	if index < 0 || index >= len(s.Items) {
		return Item{}, false
	}
	return s.Items[index], true
}

// IndexOf returns the index of the item with the given ID, or -1
func (s Snapshot) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for idx, item := range s.Items {
		if item.ID == id {
			return idx
		}
	}
	return -1
}

// Resolve finds the current index for ref. The index wins when it still holds
// the referenced ID (or the ref carries no ID); otherwise the ID is looked up.
func (s Snapshot) Resolve(ref Ref) int {
	if item, ok := s.At(ref.Index); ok && (ref.ID == "" || item.ID == ref.ID) {
		return ref.Index
	}
	return s.IndexOf(ref.ID)
}
