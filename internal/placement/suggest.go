// Package placement fills in the placement of partially specified items
package placement

import (
	"cmp"
	"slices"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
)

// DefaultLength is the length given to items without a stop
const DefaultLength = 100

// Presence decides when a partial field counts as missing
type Presence int

const (
	// PresenceExplicit treats only absent fields as missing; an explicit 0 is kept
	PresenceExplicit Presence = iota
	// PresenceTruthy also treats 0 as missing, like the legacy editor did
	PresenceTruthy
)

// Options configures Suggest
type Options struct {
	DefaultLength int
	Presence      Presence
}

func (o Options) length() int {
	if o.DefaultLength <= 0 {
		return DefaultLength
	}
	return o.DefaultLength
}

func (o Options) present(v *int) bool {
	if v == nil {
		return false
	}
	return o.Presence == PresenceExplicit || *v != 0
}

// Suggest returns a fully specified item for partial, placing it after the
// last existing entry (ordered by start, then priority) on the next layer.
// Layers wrap around to 0 once the layer budget of geom is used up.
func Suggest(existing []model.Item, partial model.Partial, geom layout.Config, opts Options) model.Item {
	last := lastEntry(existing)

	item := model.Item{
		ID:         partial.ID,
		Label:      partial.Label,
		Attributes: partial.Attributes,
	}

	if opts.present(partial.Start) {
		item.Start = *partial.Start
	} else {
		item.Start = last.Stop
	}

	if opts.present(partial.Stop) {
		item.Stop = *partial.Stop
	} else {
		item.Stop = item.Start + opts.length()
	}

	if opts.present(partial.Priority) {
		item.Priority = *partial.Priority
	} else {
		item.Priority = (last.Priority + 1) % geom.LayerCount(geom.Height)
	}

	return item
}

func lastEntry(existing []model.Item) model.Item {
	if len(existing) == 0 {
		return model.Item{Stop: 0, Priority: -1}
	}

	sorted := slices.Clone(existing)
	slices.SortStableFunc(sorted, func(a, b model.Item) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.Priority, b.Priority))
	})
	return sorted[len(sorted)-1]
}
