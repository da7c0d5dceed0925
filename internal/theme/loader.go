package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// Config is the raw TOML theme file. Colors maps color names such as
// "item_active" to #RRGGBB, #RGB or rgb(r,g,b) values.
type Config struct {
	Name   string            `toml:"name"`
	Base   string            `toml:"base"`
	Colors map[string]string `toml:"colors"`
}

func (c *Colors) byName() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"grid_stripe":         &c.GridStripe,
		"grid_stripe_alt":     &c.GridStripeAlt,
		"grid_label":          &c.GridLabel,
		"axis":                &c.Axis,
		"item_text":           &c.ItemText,
		"item_background":     &c.ItemBackground,
		"item_active":         &c.ItemActive,
		"item_active_text":    &c.ItemActiveText,
		"item_drag":           &c.ItemDrag,
		"item_handle":         &c.ItemHandle,
		"item_match":          &c.ItemMatch,
		"form_label":          &c.FormLabel,
		"form_value":          &c.FormValue,
		"form_editing":        &c.FormEditing,
		"search_label":        &c.SearchLabel,
		"search_text":         &c.SearchText,
		"search_cursor":       &c.SearchCursor,
		"search_result_count": &c.SearchResultCount,
		"command_prompt":      &c.CommandPrompt,
		"command_text":        &c.CommandText,
		"command_cursor":      &c.CommandCursor,
		"help_background":     &c.HelpBackground,
		"help_border":         &c.HelpBorder,
		"help_title":          &c.HelpTitle,
		"help_content":        &c.HelpContent,
		"status_mode":         &c.StatusMode,
		"status_message":      &c.StatusMessage,
		"status_modified":     &c.StatusModified,
		"header_title":        &c.HeaderTitle,
	}
}

func getThemePaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "tui-timeline", "themes"),
		filepath.Join(home, ".local", "share", "tui-timeline", "themes"),
	}
}

func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme applies the configured colors on top of the base theme
// (Tokyo Night unless the file names another built-in one)
func configToTheme(config Config) (*Theme, error) {
	t := Builtin(config.Base)
	if t == nil {
		t = TokyoNight()
	}

	fields := t.Colors.byName()
	for name, value := range config.Colors {
		field, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("unknown theme color %q", name)
		}
		*field = ParseColorString(value)
	}

	if config.Name != "" {
		t.Name = config.Name
	}
	return t, nil
}

// LoadThemeOrDefault returns the built-in or file theme called themeName,
// falling back to Tokyo Night
func LoadThemeOrDefault(themeName string) *Theme {
	if t := Builtin(themeName); t != nil {
		return t
	}

	t, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}
	return t
}
