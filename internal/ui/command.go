package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-timeline/internal/history"
)

const commandHistorySize = 50

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active bool
	input  *LineInput
}

// NewCommandMode creates a command line without history persistence
func NewCommandMode() *CommandMode {
	return &CommandMode{input: NewLineInput(NewHistory(commandHistorySize))}
}

// NewCommandModeWithHistory creates a command line whose history is kept in
// command.toml. A history that fails to load starts empty.
func NewCommandModeWithHistory(manager *history.Manager) *CommandMode {
	h, _ := NewHistoryWithManager(commandHistorySize, manager, "command.toml")
	return &CommandMode{input: NewLineInput(h)}
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input.Reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input.Text())
}

// HandleKey processes a key press. done is true when command mode ended;
// command is empty when it was cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := c.GetInput()
		c.input.Commit(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.input.Text() == "" {
			c.Stop()
			return "", true
		}
	}
	c.input.HandleKey(ev)
	return "", false
}

// Render renders the command line on row y
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}
	x := screen.DrawString(0, y, ":", screen.CommandPromptStyle())
	c.input.Render(screen, x, y, screen.GetWidth(), screen.CommandTextStyle(), screen.CommandCursorStyle())
}
