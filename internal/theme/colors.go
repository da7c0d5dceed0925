package theme

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HexToColor converts a hex color string (#RRGGBB or #RGB) to tcell.Color
func HexToColor(hexColor string) tcell.Color {
	c, ok := parseHex(hexColor)
	if !ok {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func parseHex(hexColor string) (colorful.Color, bool) {
	hexColor = strings.TrimPrefix(strings.TrimSpace(hexColor), "#")

	// Expand the short form (#RGB)
	if len(hexColor) == 3 {
		hexColor = strings.Repeat(hexColor[0:1], 2) + strings.Repeat(hexColor[1:2], 2) + strings.Repeat(hexColor[2:3], 2)
	}
	if len(hexColor) != 6 {
		return colorful.Color{}, false
	}

	c, err := colorful.Hex("#" + hexColor)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// RGBToColor converts RGB values to tcell.Color
func RGBToColor(r, g, b int) tcell.Color {
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ParseColorString handles #RRGGBB, #RGB and rgb(r,g,b)
func ParseColorString(colorStr string) tcell.Color {
	colorStr = strings.TrimSpace(colorStr)

	if strings.HasPrefix(colorStr, "#") {
		return HexToColor(colorStr)
	}

	inner, ok := strings.CutPrefix(colorStr, "rgb(")
	if !ok {
		return tcell.ColorDefault
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return tcell.ColorDefault
	}
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return tcell.ColorDefault
	}

	var rgb [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return tcell.ColorDefault
		}
		rgb[i] = v
	}
	return RGBToColor(rgb[0], rgb[1], rgb[2])
}

// ToColorful converts a tcell color for blending and hex output. Colors
// without an RGB value (the terminal default) map to fallback.
func ToColorful(c tcell.Color, fallback string) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		fc, _ := parseHex(fallback)
		return fc
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Hex returns c as #rrggbb, or fallback for the terminal default color
func Hex(c tcell.Color, fallback string) string {
	return ToColorful(c, fallback).Clamped().Hex()
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor).Background(bgColor)
}
