// Package diff compares two versions of a timeline, e.g. a backup and the
// document being edited
package diff

import "github.com/pstuifzand/tui-timeline/internal/model"

// Result lists what changed between two timelines. Items are matched by ID.
type Result struct {
	TitleChanged bool
	OldTitle     string
	NewTitle     string
	Added        []model.Item
	Removed      []model.Item
	Changed      []Change
}

// Change describes one item present in both timelines
type Change struct {
	Old    model.Item
	New    model.Item
	Fields []string
}

// LineType indicates how a diff line should be styled
type LineType int

const (
	LineHeader LineType = iota
	LineAdded
	LineRemoved
	LineChanged
	LineDetail
	LineSummary
	LineBlank
)

// Line is one rendered line of diff output
type Line struct {
	Type    LineType
	Content string
	Indent  int
}

// Empty reports whether nothing changed
func (r *Result) Empty() bool {
	return !r.TitleChanged && len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}
