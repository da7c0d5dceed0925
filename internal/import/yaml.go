package import_parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// YAMLParser reads the document the YAML export writes. Items may leave out
// start, stop and priority.
type YAMLParser struct{}

func (p *YAMLParser) Name() string {
	return "YAML"
}

type yamlDocument struct {
	Title string     `yaml:"title"`
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	ID         string            `yaml:"id"`
	Start      *int              `yaml:"start"`
	Stop       *int              `yaml:"stop"`
	Priority   *int              `yaml:"priority"`
	Label      string            `yaml:"label"`
	Attributes map[string]string `yaml:"attributes"`
}

// Parse converts a YAML document to partial items
func (p *YAMLParser) Parse(content string) (*Result, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, err
	}

	result := &Result{Title: doc.Title}
	for i, it := range doc.Items {
		if it.Priority != nil && *it.Priority < 0 {
			return nil, fmt.Errorf("item %d: priority must not be negative", i)
		}
		result.Items = append(result.Items, model.Partial{
			ID:         it.ID,
			Start:      it.Start,
			Stop:       it.Stop,
			Priority:   it.Priority,
			Label:      it.Label,
			Attributes: it.Attributes,
		})
	}
	return result, nil
}
