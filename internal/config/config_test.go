package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/placement"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("snap", "off")
	assert.Equal(t, "off", cfg.Get("snap"))
}

func TestGetSessionOverridesPersisted(t *testing.T) {
	cfg := &Config{Settings: map[string]string{"snap": "on", "grid": "on"}}

	assert.Equal(t, "", cfg.Get("nonexistent"))

	cfg.Set("snap", "off")
	assert.Equal(t, "off", cfg.Get("snap"))
	assert.Equal(t, map[string]string{"snap": "off", "grid": "on"}, cfg.GetAll())
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{}
	cfg.Set("original", "value")

	all := cfg.GetAll()
	all["original"] = "modified"

	assert.Equal(t, "value", cfg.Get("original"), "GetAll() should return a copy, not a reference")
}

func TestNilSessionSettings(t *testing.T) {
	assert.Equal(t, "", (&Config{}).Get("key"))

	cfg := &Config{}
	cfg.Set("key", "value")
	assert.Equal(t, "value", cfg.Get("key"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.NotNil(t, cfg.sessionSettings)
	assert.Equal(t, layout.Default(), cfg.Layout())
	assert.Equal(t, placement.Options{DefaultLength: 100, Presence: placement.PresenceExplicit}, cfg.Placement())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))

	require.NoError(t, err)
	assert.Equal(t, layout.Default(), cfg.Layout())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
theme = "light"

[timeline]
layer_height = 40
range_max = 3000
presence = "truthy"

[display]
units_per_column = 5

[settings]
snap = "off"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 40, cfg.Timeline.LayerHeight)
	assert.Equal(t, 3000, cfg.Timeline.RangeMax)
	assert.Equal(t, layout.DefaultPadding, cfg.Timeline.Padding, "unset fields keep defaults")
	assert.Equal(t, placement.PresenceTruthy, cfg.Placement().Presence)
	assert.Equal(t, 5, cfg.Display.UnitsPerColumn)
	assert.Equal(t, 10, cfg.Display.UnitsPerRow)
	assert.Equal(t, "off", cfg.Get("snap"))
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[timeline]\nlayer_height = 40\n")
	t.Setenv("TUT_LAYER_HEIGHT", "25")
	t.Setenv("TUT_THEME", "dark")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Timeline.LayerHeight)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero layer height", "[timeline]\nlayer_height = 0\n"},
		{"negative gutter", "[timeline]\nlayer_gutter = -1\n"},
		{"inverted range", "[timeline]\nrange_min = 100\nrange_max = 50\n"},
		{"unknown presence", "[timeline]\npresence = \"sometimes\"\n"},
		{"zero column scale", "[display]\nunits_per_column = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLayoutErrorIsWrapped(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "[timeline]\nheight = 0\n"))

	assert.ErrorIs(t, err, layout.ErrInvalidConfig)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "[timeline\n"))

	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestSaveToFileRoundTrip(t *testing.T) {
	cfg := defaultConfig()
	cfg.Timeline.LayerGutter = 10
	cfg.Settings["snap"] = "off"
	cfg.Set("session-only", "x")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Timeline.LayerGutter)
	assert.Equal(t, "off", loaded.Get("snap"))
	assert.Equal(t, "", loaded.Get("session-only"))
}
