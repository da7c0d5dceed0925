package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
	commands    []KeyBindingInfo
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings and `:` commands to display
func (h *HelpScreen) SetKeybindings(keybindings, commands []KeyBindingInfo) {
	h.keybindings = keybindings
	h.commands = commands
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide closes the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the help text
func (h *HelpScreen) Lines() []string {
	lines := []string{"Keys:", ""}
	for _, kb := range h.keybindings {
		lines = append(lines, fmt.Sprintf("  %-10s %s", kb.GetKey(), kb.GetDescription()))
	}
	lines = append(lines,
		"",
		"Mouse:",
		"",
		"  click      select an item",
		"  drag body  move an item in time and between layers",
		"  drag edge  change where an item stops",
		"  Escape     cancel a drag",
		"",
		"Commands:",
		"",
	)
	for _, cmd := range h.commands {
		lines = append(lines, fmt.Sprintf("  :%-24s %s", cmd.GetKey(), cmd.GetDescription()))
	}
	return lines
}

// Render renders the help screen as a box over the whole screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	width, height := screen.Size()
	screen.Fill(0, 0, width, height, ' ', contentStyle)

	startX, startY := 2, 1
	boxWidth := width - 4
	bottom := height - 2
	if boxWidth < 10 || bottom <= startY+3 {
		return
	}
	right := startX + boxWidth - 1

	hline := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for x := startX + 1; x < startX+boxWidth-1; x++ {
			screen.SetCell(x, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}

	hline(startY, '┌', '┐')
	screen.SetCell(startX, startY+1, '│', borderStyle)
	screen.DrawString(startX+2, startY+1, " Help (? to close) ", titleStyle)
	screen.SetCell(right, startY+1, '│', borderStyle)
	hline(startY+2, '├', '┤')

	y := startY + 3
	for _, line := range h.Lines() {
		if y >= bottom {
			break
		}
		screen.SetCell(startX, y, '│', borderStyle)
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		screen.SetCell(right, y, '│', borderStyle)
		y++
	}
	hline(y, '└', '┘')
}
