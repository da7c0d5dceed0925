package diff

import (
	"cmp"
	"maps"
	"slices"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// Compare returns the changes that turn older into newer. Added, removed and
// changed items are ordered by start, then ID.
func Compare(older, newer *model.Timeline) *Result {
	result := &Result{}
	if older.Title != newer.Title {
		result.TitleChanged = true
		result.OldTitle = older.Title
		result.NewTitle = newer.Title
	}

	before := index(older)
	after := index(newer)

	for id, item := range after {
		prev, ok := before[id]
		if !ok {
			result.Added = append(result.Added, item)
			continue
		}
		if fields := changedFields(prev, item); len(fields) > 0 {
			result.Changed = append(result.Changed, Change{Old: prev, New: item, Fields: fields})
		}
	}
	for id, item := range before {
		if _, ok := after[id]; !ok {
			result.Removed = append(result.Removed, item)
		}
	}

	slices.SortFunc(result.Added, byStart)
	slices.SortFunc(result.Removed, byStart)
	slices.SortFunc(result.Changed, func(a, b Change) int { return byStart(a.New, b.New) })
	return result
}

func index(t *model.Timeline) map[string]model.Item {
	items := make(map[string]model.Item, len(t.Items))
	for _, item := range t.Items {
		if item != nil {
			items[item.ID] = *item
		}
	}
	return items
}

func byStart(a, b model.Item) int {
	return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.ID, b.ID))
}

func changedFields(old, cur model.Item) []string {
	var fields []string
	if old.Start != cur.Start {
		fields = append(fields, "start")
	}
	if old.Stop != cur.Stop {
		fields = append(fields, "stop")
	}
	if old.Priority != cur.Priority {
		fields = append(fields, "priority")
	}
	if old.Label != cur.Label {
		fields = append(fields, "label")
	}
	keys := slices.Sorted(maps.Keys(old.Attributes))
	for _, k := range slices.Sorted(maps.Keys(cur.Attributes)) {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		ov, oldOK := old.Attributes[k]
		nv, newOK := cur.Attributes[k]
		if ov != nv || oldOK != newOK {
			fields = append(fields, k)
		}
	}
	return fields
}
