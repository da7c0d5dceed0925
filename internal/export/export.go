// Package export writes timelines to SVG, Markdown and YAML files
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/theme"
)

// Format is an export file format
type Format string

// Export formats
const (
	FormatSVG      Format = "svg"
	FormatMarkdown Format = "md"
	FormatYAML     Format = "yaml"
)

// Options configures an export
type Options struct {
	Geometry layout.Config
	Theme    *theme.Theme
	// ActiveID highlights one item in the SVG output
	ActiveID string
}

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "svg":
		return FormatSVG, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format: %q", s)
}

// Write renders tl in format to w
func Write(w io.Writer, format Format, tl *model.Timeline, opts Options) error {
	switch format {
	case FormatSVG:
		return SVG(w, tl, opts)
	case FormatMarkdown:
		return Markdown(w, tl)
	case FormatYAML:
		return YAML(w, tl)
	}
	return fmt.Errorf("unsupported export format: %q", format)
}

// ToFile renders tl in format into filePath
func ToFile(filePath string, format Format, tl *model.Timeline, opts Options) error {
	var buf bytes.Buffer
	if err := Write(&buf, format, tl, opts); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// DefaultFilename names an export after the timeline title and the time,
// e.g. "20251103-150405-release-plan.svg"
func DefaultFilename(dir, title string, format Format, now time.Time) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "timeline"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", strftime.Format("%Y%m%d-%H%M%S", now), slug, format))
}

func itemsOf(tl *model.Timeline) []model.Item {
	items := make([]model.Item, 0, len(tl.Items))
	for _, item := range tl.Items {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items
}
