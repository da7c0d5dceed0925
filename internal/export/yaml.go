package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// YAML writes the timeline document as YAML
func YAML(w io.Writer, tl *model.Timeline) error {
	doc := model.Timeline{Title: tl.Title, Items: tl.Items}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
