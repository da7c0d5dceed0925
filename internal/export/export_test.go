package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
)

func sample() *model.Timeline {
	tl := model.NewTimeline("Release <plan>")
	tl.Items = append(tl.Items,
		&model.Item{ID: "a", Start: 0, Stop: 100, Priority: 0, Label: "Design"},
		&model.Item{ID: "b", Start: 100, Stop: 250, Priority: 1, Label: "Build & test", Attributes: map[string]string{"owner": "kim"}},
	)
	return tl
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"svg": FormatSVG, ".md": FormatMarkdown, "markdown": FormatMarkdown, "YML": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, sample(), Options{Geometry: layout.Default(), ActiveID: "b"}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml`))
	assert.Contains(t, out, `<svg width="2140" height="200"`)
	assert.Contains(t, out, `<title>Release &lt;plan&gt;</title>`)
	assert.Contains(t, out, `translate(120,0)`)
	assert.Equal(t, 21, strings.Count(out, `font-size="10"`), "one label per grid stripe")
	assert.Contains(t, out, `<rect x="100" y="70" width="150" height="30"`)
	assert.Contains(t, out, `Build &amp; test`)
	assert.Contains(t, out, `<g id="item-b">`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestSVGRejectsInvalidGeometry(t *testing.T) {
	geom := layout.Default()
	geom.LayerHeight = 0

	err := SVG(&bytes.Buffer{}, sample(), Options{Geometry: geom})
	assert.ErrorIs(t, err, layout.ErrInvalidConfig)
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, sample()))

	assert.Equal(t, "# Release <plan>\n\n- 0..100 @0 Design\n- 100..250 @1 Build & test\n", buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, sample()))

	var back model.Timeline
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample().Items, back.Items)
	assert.NotContains(t, buf.String(), "original_filename")
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")

	require.NoError(t, ToFile(path, FormatMarkdown, sample(), Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- 0..100 @0 Design")
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2025, 11, 3, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, filepath.Join("out", "20251103-150405-release-plan.svg"),
		DefaultFilename("out", "Release <plan>", FormatSVG, now))
	assert.Equal(t, "20251103-150405-timeline.yaml", DefaultFilename("", "  ", FormatYAML, now))
}
