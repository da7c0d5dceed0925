package import_parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/placement"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("plan.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("plan.YML"))
	assert.Equal(t, FormatLines, DetectFormat("plan.md"))
	assert.Equal(t, FormatLines, DetectFormat("plan"))
}

func TestLineParser(t *testing.T) {
	content := `# Release plan

- 0..100 @1 Design review
* 250 Launch
Retrospective
# a comment
-50..-10 Prep`

	result, err := ImportFile(content, FormatLines)
	require.NoError(t, err)

	assert.Equal(t, "Release plan", result.Title)
	assert.Equal(t, []model.Partial{
		{Start: model.Int(0), Stop: model.Int(100), Priority: model.Int(1), Label: "Design review"},
		{Start: model.Int(250), Label: "Launch"},
		{Label: "Retrospective"},
		{Start: model.Int(-50), Stop: model.Int(-10), Label: "Prep"},
	}, result.Items)
}

func TestLineParserRejectsInvertedSpan(t *testing.T) {
	_, err := ImportFile("one\n100..50 backwards", FormatLines)

	assert.ErrorContains(t, err, "line 2")
}

func TestYAMLParser(t *testing.T) {
	content := `
title: Plan
items:
  - id: a
    start: 0
    stop: 100
    priority: 0
    label: Design
  - label: Build
    attributes:
      owner: kim
`
	result, err := ImportFile(content, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Plan", result.Title)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "a", result.Items[0].ID)
	assert.Equal(t, 100, *result.Items[0].Stop)
	assert.Nil(t, result.Items[1].Start)
	assert.Equal(t, map[string]string{"owner": "kim"}, result.Items[1].Attributes)
}

func TestYAMLParserErrors(t *testing.T) {
	_, err := ImportFile("items: [", FormatYAML)
	assert.ErrorContains(t, err, "parse error (YAML)")

	_, err = ImportFile("items:\n  - priority: -1\n", FormatYAML)
	assert.ErrorContains(t, err, "priority")

	_, err = ImportFile("", ImportFormat("csv"))
	assert.Error(t, err)
}

func TestPlaceSuggestsInSequence(t *testing.T) {
	existing := []model.Item{{ID: "x", Start: 0, Stop: 100, Priority: 0}}
	partials := []model.Partial{{Label: "one"}, {Label: "two"}, {Start: model.Int(5), Label: "three"}}

	placed := Place(existing, partials, layout.Default(), placement.Options{})

	require.Len(t, placed, 3)
	assert.Equal(t, []int{100, 200, 5}, []int{placed[0].Start, placed[1].Start, placed[2].Start})
	assert.Equal(t, []int{1, 2, 0}, []int{placed[0].Priority, placed[1].Priority, placed[2].Priority})
	for _, item := range placed {
		assert.NotEmpty(t, item.ID)
	}
}
