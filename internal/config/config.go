package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go-simpler.org/env"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/placement"
)

// AppName is used for the config, data and socket locations
const AppName = "tui-timeline"

// Config holds application configuration
type Config struct {
	Theme    string            `toml:"theme" env:"TUT_THEME"`
	LogLevel string            `toml:"log_level" env:"TUT_LOG_LEVEL"`
	Timeline TimelineConfig    `toml:"timeline"`
	Display  DisplayConfig     `toml:"display"`
	Settings map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// TimelineConfig holds the layout metrics and placement defaults
type TimelineConfig struct {
	RangeMin      int    `toml:"range_min" env:"TUT_RANGE_MIN"`
	RangeMax      int    `toml:"range_max" env:"TUT_RANGE_MAX"`
	Height        int    `toml:"height" env:"TUT_HEIGHT"`
	Padding       int    `toml:"padding" env:"TUT_PADDING"`
	LayerHeight   int    `toml:"layer_height" env:"TUT_LAYER_HEIGHT"`
	LayerGutter   int    `toml:"layer_gutter" env:"TUT_LAYER_GUTTER"`
	DefaultLength int    `toml:"default_length" env:"TUT_DEFAULT_LENGTH"`
	Presence      string `toml:"presence" env:"TUT_PRESENCE"`
}

// DisplayConfig maps timeline units onto terminal cells
type DisplayConfig struct {
	UnitsPerColumn int  `toml:"units_per_column" env:"TUT_UNITS_PER_COLUMN"`
	UnitsPerRow    int  `toml:"units_per_row" env:"TUT_UNITS_PER_ROW"`
	AutosaveSecs   int  `toml:"autosave_seconds" env:"TUT_AUTOSAVE_SECONDS"`
	Backups        bool `toml:"backups" env:"TUT_BACKUPS"`
}

// Load loads the config file from the standard location and applies
// TUT_* environment overrides
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Can't find a config path, use defaults
		return finish(defaultConfig())
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file and applies TUT_*
// environment overrides
func LoadFromFile(filePath string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return finish(config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields missing from the file keep their defaults
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return finish(config)
}

func finish(config *Config) (*Config, error) {
	if err := env.Load(config, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if config.Theme == "" {
		config.Theme = "tokyo-night"
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	config.sessionSettings = make(map[string]string)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the timeline and display settings
func (c *Config) Validate() error {
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("timeline config: %w", err)
	}
	if _, err := parsePresence(c.Timeline.Presence); err != nil {
		return fmt.Errorf("timeline config: %w", err)
	}
	if c.Timeline.DefaultLength < 0 {
		return fmt.Errorf("timeline config: default_length must not be negative, got %d", c.Timeline.DefaultLength)
	}
	if c.Display.UnitsPerColumn <= 0 || c.Display.UnitsPerRow <= 0 {
		return fmt.Errorf("display config: units per column and row must be positive, got %d and %d",
			c.Display.UnitsPerColumn, c.Display.UnitsPerRow)
	}
	return nil
}

// Layout returns the layout config described by the timeline section
func (c *Config) Layout() layout.Config {
	t := c.Timeline
	return layout.Config{
		Range:       layout.Range{Min: t.RangeMin, Max: t.RangeMax},
		Height:      t.Height,
		Padding:     t.Padding,
		LayerHeight: t.LayerHeight,
		LayerGutter: t.LayerGutter,
	}
}

// Placement returns the placement options described by the timeline section
func (c *Config) Placement() placement.Options {
	presence, _ := parsePresence(c.Timeline.Presence)
	return placement.Options{
		DefaultLength: c.Timeline.DefaultLength,
		Presence:      presence,
	}
}

func parsePresence(s string) (placement.Presence, error) {
	switch strings.ToLower(s) {
	case "", "explicit":
		return placement.PresenceExplicit, nil
	case "truthy":
		return placement.PresenceTruthy, nil
	}
	return 0, fmt.Errorf("presence must be \"explicit\" or \"truthy\", got %q", s)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:    "tokyo-night",
		LogLevel: "info",
		Timeline: TimelineConfig{
			RangeMin:      layout.DefaultRangeMin,
			RangeMax:      layout.DefaultRangeMax,
			Height:        layout.DefaultHeight,
			Padding:       layout.DefaultPadding,
			LayerHeight:   layout.DefaultLayerHeight,
			LayerGutter:   layout.DefaultLayerGutter,
			DefaultLength: placement.DefaultLength,
			Presence:      "explicit",
		},
		Display: DisplayConfig{
			UnitsPerColumn: 10,
			UnitsPerRow:    10,
			AutosaveSecs:   5,
			Backups:        true,
		},
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", AppName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value. Session settings win over persisted
// ones; missing keys return "".
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	return c.Settings[key]
}

// GetAll returns a copy of all configuration values, session settings
// overriding persisted ones
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string, len(c.Settings)+len(c.sessionSettings))
	maps.Copy(result, c.Settings)
	maps.Copy(result, c.sessionSettings)
	return result
}

// Save persists the configuration to the TOML file.
// Session settings are not written.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return c.SaveToFile(configPath)
}

// SaveToFile writes the configuration to filePath
func (c *Config) SaveToFile(filePath string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
