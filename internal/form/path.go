// Package form keeps the editable field view of the timeline in sync with
// the item collection. Fields are addressed by paths like "timeline[3].start".
package form

import (
	"fmt"
	"regexp"
	"strconv"
)

// Field names
const (
	FieldStart    = "start"
	FieldStop     = "stop"
	FieldPriority = "priority"
	FieldLabel    = "label"
)

var pathPattern = regexp.MustCompile(`^timeline\[(\d+)\](?:\.([A-Za-z_][A-Za-z0-9_-]*))?$`)

// ItemPath returns the path of the item at index
func ItemPath(index int) string {
	return fmt.Sprintf("timeline[%d]", index)
}

// FieldPath returns the path of a field of the item at index
func FieldPath(index int, field string) string {
	return fmt.Sprintf("timeline[%d].%s", index, field)
}

// ParsePath splits a path into the item index and the field name.
// The field is empty for item paths.
func ParsePath(path string) (index int, field string, err error) {
	m := pathPattern.FindStringSubmatch(path)
	if m == nil {
		return 0, "", fmt.Errorf("invalid form path %q", path)
	}
	index, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("invalid index in form path %q: %w", path, err)
	}
	return index, m[2], nil
}

// IsNumeric reports whether field holds an integer
func IsNumeric(field string) bool {
	switch field {
	case FieldStart, FieldStop, FieldPriority:
		return true
	}
	return false
}
