package ui

import (
	"github.com/mattn/go-runewidth"
)

// Widths here are display columns, not bytes: labels may hold wide
// characters (emoji, CJK) that take two cells.

// RuneWidth returns the display width of a single rune. Control and
// combining characters count as 0.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting runes
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}
	return s
}

// TruncateToWidthWithEllipsis cuts s to maxWidth columns, ending in "…" when
// something was cut off
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return TruncateToWidth(s, maxWidth)
	}
	return TruncateToWidth(s, maxWidth-1) + "…"
}

// PadStringToWidth pads s with spaces up to width columns
func PadStringToWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// widthBefore returns the display width of s[:bytePos]
func widthBefore(s string, bytePos int) int {
	if bytePos > len(s) {
		bytePos = len(s)
	}
	return StringWidth(s[:bytePos])
}
