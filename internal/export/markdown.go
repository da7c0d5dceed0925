package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// Markdown writes the timeline as a heading and one bullet per item in
// collection order, using the line syntax the importer reads back:
//
//	- 0..100 @1 Design review
func Markdown(w io.Writer, tl *model.Timeline) error {
	var sb strings.Builder

	title := strings.TrimSpace(tl.Title)
	if title == "" {
		title = "Timeline"
	}
	sb.WriteString("# " + title + "\n\n")

	for _, item := range itemsOf(tl) {
		fmt.Fprintf(&sb, "- %d..%d @%d", item.Start, item.Stop, item.Priority)
		if label := strings.Join(strings.Fields(item.Label), " "); label != "" {
			sb.WriteString(" " + label)
		}
		sb.WriteString("\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}
