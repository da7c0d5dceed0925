package diff

import (
	"fmt"
	"strconv"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

const maxLabel = 60

// BuildLines formats a result for the terminal and the CLI. Without verbose
// only item headers and the summary are listed.
func BuildLines(r *Result, verbose bool) []Line {
	var lines []Line
	if r.TitleChanged {
		lines = append(lines,
			Line{Type: LineHeader, Content: "Title:"},
			Line{Type: LineChanged, Content: fmt.Sprintf("%q -> %q", r.OldTitle, r.NewTitle), Indent: 1},
			Line{Type: LineBlank},
		)
	}

	if len(r.Added) > 0 {
		lines = append(lines, Line{Type: LineHeader, Content: "Added:"})
		for _, item := range r.Added {
			lines = append(lines, Line{Type: LineAdded, Content: "+ " + describe(item.Start, item.Stop, item.Priority, item.Label), Indent: 1})
		}
		lines = append(lines, Line{Type: LineBlank})
	}

	if len(r.Removed) > 0 {
		lines = append(lines, Line{Type: LineHeader, Content: "Removed:"})
		for _, item := range r.Removed {
			lines = append(lines, Line{Type: LineRemoved, Content: "- " + describe(item.Start, item.Stop, item.Priority, item.Label), Indent: 1})
		}
		lines = append(lines, Line{Type: LineBlank})
	}

	if len(r.Changed) > 0 {
		lines = append(lines, Line{Type: LineHeader, Content: "Changed:"})
		for _, c := range r.Changed {
			lines = append(lines, Line{Type: LineChanged, Content: "~ " + describe(c.New.Start, c.New.Stop, c.New.Priority, c.New.Label), Indent: 1})
			if !verbose {
				continue
			}
			for _, field := range c.Fields {
				lines = append(lines, Line{
					Type:    LineDetail,
					Content: fmt.Sprintf("%s: %s -> %s", field, fieldValue(c.Old, field), fieldValue(c.New, field)),
					Indent:  2,
				})
			}
		}
		lines = append(lines, Line{Type: LineBlank})
	}

	lines = append(lines, Line{
		Type:    LineSummary,
		Content: fmt.Sprintf("%d changed, %d added, %d removed", len(r.Changed), len(r.Added), len(r.Removed)),
	})
	return lines
}

func describe(start, stop, priority int, label string) string {
	s := fmt.Sprintf("%d..%d @%d", start, stop, priority)
	if label != "" {
		s += " " + truncate(label)
	}
	return s
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxLabel {
		return text
	}
	return string(runes[:maxLabel-3]) + "..."
}

func fieldValue(item model.Item, field string) string {
	switch field {
	case "start":
		return strconv.Itoa(item.Start)
	case "stop":
		return strconv.Itoa(item.Stop)
	case "priority":
		return strconv.Itoa(item.Priority)
	case "label":
		return strconv.Quote(item.Label)
	}
	if v, ok := item.Attributes[field]; ok {
		return strconv.Quote(v)
	}
	return "(none)"
}
