package ui

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// editableItem is the YAML document shown in the external editor. The ID is
// left out so it cannot be changed.
type editableItem struct {
	Start      int               `yaml:"start"`
	Stop       int               `yaml:"stop"`
	Priority   int               `yaml:"priority"`
	Label      string            `yaml:"label"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// EditItemInExternalEditor opens item as YAML in the user's editor and
// returns the edited fields as a partial. changed is false when the file was
// left untouched or emptied. The caller must release the terminal first.
func EditItemInExternalEditor(item model.Item, editor string) (fields model.Partial, changed bool, err error) {
	tmpFile, err := os.CreateTemp("", "tut-edit-*.yaml")
	if err != nil {
		return model.Partial{}, false, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	original, err := marshalEditable(item)
	if err != nil {
		tmpFile.Close()
		return model.Partial{}, false, err
	}
	if _, err := tmpFile.Write(original); err != nil {
		tmpFile.Close()
		return model.Partial{}, false, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	// sh -c so that editor commands with flags ("vim --clean") work
	cmd := exec.Command("sh", "-c", editor+" "+tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return model.Partial{}, false, fmt.Errorf("failed to launch editor: %w", err)
		}
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return model.Partial{}, false, fmt.Errorf("failed to read edited file: %w", err)
	}
	if bytes.Equal(original, edited) || len(bytes.TrimSpace(edited)) == 0 {
		return model.Partial{}, false, nil
	}

	fields, err = parseEditable(edited)
	if err != nil {
		return model.Partial{}, false, err
	}
	return fields, true, nil
}

// ResolveEditor picks the configured editor, then $EDITOR, then vi
func ResolveEditor(configured string) string {
	if configured != "" {
		return configured
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

func marshalEditable(item model.Item) ([]byte, error) {
	data, err := yaml.Marshal(editableItem{
		Start:      item.Start,
		Stop:       item.Stop,
		Priority:   item.Priority,
		Label:      item.Label,
		Attributes: item.Attributes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode item: %w", err)
	}
	return data, nil
}

func parseEditable(data []byte) (model.Partial, error) {
	var e editableItem
	if err := yaml.Unmarshal(data, &e); err != nil {
		return model.Partial{}, fmt.Errorf("failed to parse edited item (keeping original): %w", err)
	}
	if e.Priority < 0 {
		return model.Partial{}, fmt.Errorf("priority must not be negative, got %d (keeping original)", e.Priority)
	}
	return model.Partial{
		Start:      model.Int(e.Start),
		Stop:       model.Int(e.Stop),
		Priority:   model.Int(e.Priority),
		Label:      e.Label,
		Attributes: e.Attributes,
	}, nil
}
