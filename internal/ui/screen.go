package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-timeline/internal/editor"
	"github.com/pstuifzand/tui-timeline/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	Theme       *theme.Theme
	cursor      editor.Cursor
}

// NewScreen creates and initializes a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom wraps an existing tcell screen, e.g. a simulation screen in
// tests. The screen is initialized here.
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.TokyoNight()
	}
	return &Screen{
		tcellScreen: tcellScreen,
		Theme:       t,
		cursor:      editor.CursorDefault,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position; cells off screen are ignored
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	w, h := s.tcellScreen.Size()
	if x >= 0 && x < w && y >= 0 && y < h {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text at the given position and returns the column after it
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	return x
}

// DrawStringLimited draws text cut to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// Fill paints a rectangle
func (s *Screen) Fill(x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetCell(col, row, r, style)
		}
	}
}

// PollEvent waits for the next terminal event
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole terminal, e.g. after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	return s.tcellScreen.Size()
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	w, _ := s.tcellScreen.Size()
	return w
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, h := s.tcellScreen.Size()
	return h
}

// EnableMouse turns on mouse reporting including motion while a button is
// held, which drags need
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents)
}

// SetCursor implements editor.CursorSink. Terminals have no pointer shapes,
// so the text cursor style stands in for them.
func (s *Screen) SetCursor(c editor.Cursor) {
	s.cursor = c
	switch c {
	case editor.CursorMove:
		s.tcellScreen.SetCursorStyle(tcell.CursorStyleBlinkingBlock)
	case editor.CursorResize:
		s.tcellScreen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	case editor.CursorPointer:
		s.tcellScreen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	default:
		s.tcellScreen.SetCursorStyle(tcell.CursorStyleDefault)
	}
}

// Cursor returns the last cursor set through SetCursor
func (s *Screen) Cursor() editor.Cursor {
	return s.cursor
}

// ShowCursor places the terminal cursor; HideCursor removes it
func (s *Screen) ShowCursor(x, y int) {
	s.tcellScreen.ShowCursor(x, y)
}

// HideCursor hides the terminal cursor
func (s *Screen) HideCursor() {
	s.tcellScreen.HideCursor()
}

func (s *Screen) pair(fg, bg tcell.Color) tcell.Style {
	return theme.ColorPairToStyle(fg, bg)
}

func (s *Screen) fg(c tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(c)
}

// StripeStyle returns the style of a background grid stripe
func (s *Screen) StripeStyle(alt bool) tcell.Style {
	c := s.Theme.Colors
	if alt {
		return s.pair(c.GridLabel, c.GridStripeAlt)
	}
	return s.pair(c.GridLabel, c.GridStripe)
}

// AxisStyle returns the style of the axis line
func (s *Screen) AxisStyle() tcell.Style {
	return s.fg(s.Theme.Colors.Axis)
}

// ItemStyle returns the style of an item box
func (s *Screen) ItemStyle(active, dragging, match bool) tcell.Style {
	c := s.Theme.Colors
	switch {
	case dragging:
		return s.pair(c.ItemActiveText, c.ItemDrag).Bold(true)
	case active:
		return s.pair(c.ItemActiveText, c.ItemActive).Bold(true)
	case match:
		return s.pair(c.ItemActiveText, c.ItemMatch)
	}
	return s.pair(c.ItemText, c.ItemBackground)
}

// ItemHandleStyle returns the style of the resize handle at an item's end
func (s *Screen) ItemHandleStyle(bg tcell.Style) tcell.Style {
	return bg.Foreground(s.Theme.Colors.ItemHandle)
}

// FormLabelStyle returns the style for form field names
func (s *Screen) FormLabelStyle() tcell.Style {
	return s.fg(s.Theme.Colors.FormLabel)
}

// FormValueStyle returns the style for form field values
func (s *Screen) FormValueStyle() tcell.Style {
	return s.fg(s.Theme.Colors.FormValue)
}

// FormEditingStyle returns the style of the field being edited
func (s *Screen) FormEditingStyle() tcell.Style {
	return s.fg(s.Theme.Colors.FormEditing).Underline(true)
}

// SearchLabelStyle returns the style for search label
func (s *Screen) SearchLabelStyle() tcell.Style {
	return s.fg(s.Theme.Colors.SearchLabel)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return s.fg(s.Theme.Colors.SearchText)
}

// SearchCursorStyle returns the style for search cursor
func (s *Screen) SearchCursorStyle() tcell.Style {
	return s.fg(s.Theme.Colors.SearchCursor).Reverse(true)
}

// SearchResultCountStyle returns the style for search result count
func (s *Screen) SearchResultCountStyle() tcell.Style {
	return s.fg(s.Theme.Colors.SearchResultCount)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return s.fg(s.Theme.Colors.CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return s.fg(s.Theme.Colors.CommandText)
}

// CommandCursorStyle returns the style for command cursor
func (s *Screen) CommandCursorStyle() tcell.Style {
	return s.fg(s.Theme.Colors.CommandCursor).Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return s.pair(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return s.pair(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return s.pair(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return s.fg(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return s.fg(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return s.fg(s.Theme.Colors.StatusModified)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return s.fg(s.Theme.Colors.HeaderTitle).Bold(true)
}

// Suspend releases the terminal, e.g. to run an external editor
func (s *Screen) Suspend() error {
	return s.tcellScreen.Suspend()
}

// Resume takes the terminal back after Suspend
func (s *Screen) Resume() error {
	return s.tcellScreen.Resume()
}
