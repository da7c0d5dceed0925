// Package theme holds the colors of the terminal view and the SVG export
package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Background grid
	GridStripe    tcell.Color
	GridStripeAlt tcell.Color
	GridLabel     tcell.Color
	Axis          tcell.Color

	// Timeline items
	ItemText       tcell.Color
	ItemBackground tcell.Color
	ItemActive     tcell.Color
	ItemActiveText tcell.Color
	ItemDrag       tcell.Color
	ItemHandle     tcell.Color
	ItemMatch      tcell.Color

	// Item form panel
	FormLabel   tcell.Color
	FormValue   tcell.Color
	FormEditing tcell.Color

	// Search bar
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchCursor      tcell.Color
	SearchResultCount tcell.Color

	// Command line
	CommandPrompt tcell.Color
	CommandText   tcell.Color
	CommandCursor tcell.Color

	// Help overlay
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color

	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	fg := HexToColor("#c0caf5")
	blue := HexToColor("#7aa2f7")
	cyan := HexToColor("#7dcfff")
	magenta := HexToColor("#bb9af7")
	green := HexToColor("#9ece6a")
	red := HexToColor("#f7768e")
	comment := HexToColor("#565f89")
	bg := HexToColor("#1a1b26")

	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			GridStripe:    HexToColor("#1f2335"),
			GridStripeAlt: HexToColor("#24283b"),
			GridLabel:     comment,
			Axis:          comment,

			ItemText:       fg,
			ItemBackground: HexToColor("#3b4261"),
			ItemActive:     blue,
			ItemActiveText: bg,
			ItemDrag:       HexToColor("#e0af68"),
			ItemHandle:     cyan,
			ItemMatch:      green,

			FormLabel:   magenta,
			FormValue:   fg,
			FormEditing: blue,

			SearchLabel:       magenta,
			SearchText:        fg,
			SearchCursor:      blue,
			SearchResultCount: green,

			CommandPrompt: magenta,
			CommandText:   fg,
			CommandCursor: blue,

			HelpBackground: bg,
			HelpBorder:     cyan,
			HelpTitle:      magenta,
			HelpContent:    fg,

			StatusMode:     magenta,
			StatusMessage:  green,
			StatusModified: red,

			HeaderTitle: magenta,
		},
	}
}

// Light returns a theme for light terminal backgrounds
func Light() *Theme {
	t := TokyoNight()
	t.Name = "light"
	c := &t.Colors
	c.GridStripe = HexToColor("#f2f2f2")
	c.GridStripeAlt = HexToColor("#e6e6e6")
	c.GridLabel = HexToColor("#666666")
	c.Axis = HexToColor("#333333")
	c.ItemText = HexToColor("#1a1b26")
	c.ItemBackground = HexToColor("#b4c8f0")
	c.ItemActive = HexToColor("#2e5cb8")
	c.ItemActiveText = HexToColor("#ffffff")
	c.FormValue = HexToColor("#1a1b26")
	c.HelpBackground = HexToColor("#ffffff")
	c.HelpContent = HexToColor("#1a1b26")
	return t
}

// Builtin returns the built-in theme called name, or nil
func Builtin(name string) *Theme {
	switch name {
	case "tokyo-night":
		return TokyoNight()
	case "light":
		return Light()
	}
	return nil
}
