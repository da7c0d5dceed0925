// Package import_parser reads items from YAML documents and plain line
// lists. Placement fields may be left out; Place fills them in.
package import_parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/placement"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatYAML  ImportFormat = "yaml"
	FormatLines ImportFormat = "lines"
	FormatAuto  ImportFormat = "auto" // Auto-detect from extension
)

// Result is a parsed import
type Result struct {
	Title string
	Items []model.Partial
}

// Parser interface for different import formats
type Parser interface {
	Parse(content string) (*Result, error)
	Name() string
}

// ImportFile parses content in the given format
func ImportFile(content string, format ImportFormat) (*Result, error) {
	var parser Parser

	switch format {
	case FormatYAML:
		parser = &YAMLParser{}
	case FormatLines:
		parser = &LineParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	result, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}

	return result, nil
}

// DetectFormat picks the format from the file extension; anything that is
// not YAML is read as lines (which also covers Markdown exports)
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatLines
}

// Place turns partials into items, appending them one by one after the
// existing items so each suggestion sees the ones before it
func Place(existing []model.Item, partials []model.Partial, geom layout.Config, opts placement.Options) []model.Item {
	all := append([]model.Item(nil), existing...)
	placed := make([]model.Item, 0, len(partials))
	for _, p := range partials {
		if p.ID == "" {
			p.ID = model.NewID()
		}
		item := placement.Suggest(all, p, geom, opts)
		all = append(all, item)
		placed = append(placed, item)
	}
	return placed
}
