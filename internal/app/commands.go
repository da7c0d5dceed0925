package app

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/pstuifzand/tui-timeline/internal/export"
	importer "github.com/pstuifzand/tui-timeline/internal/import"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/theme"
)

// Command is a `:` command
type Command struct {
	Names       []string
	Usage       string
	Description string
	Run         func(a *App, args []string)
}

// GetKey returns the usage line shown in help
func (c Command) GetKey() string {
	return c.Usage
}

// GetDescription returns the description of the command
func (c Command) GetDescription() string {
	return c.Description
}

var debugConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// InitializeCommands sets up the `:` commands
func (a *App) InitializeCommands() []Command {
	return []Command{
		{
			Names:       []string{"w", "write"},
			Usage:       "w [file]",
			Description: "Save, optionally to a new file",
			Run: func(app *App, args []string) {
				if len(args) > 0 {
					if err := app.SaveAs(args[0]); err != nil {
						app.SetStatus("Failed to save: " + err.Error())
						return
					}
					app.SetStatus("Saved " + args[0])
					return
				}
				app.saveWithStatus()
			},
		},
		{
			Names:       []string{"q", "quit"},
			Usage:       "q",
			Description: "Quit",
			Run: func(app *App, args []string) {
				if app.dirty {
					app.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
					return
				}
				app.Quit()
			},
		},
		{
			Names:       []string{"q!", "quit!"},
			Usage:       "q!",
			Description: "Quit without saving",
			Run: func(app *App, args []string) {
				app.Quit()
			},
		},
		{
			Names:       []string{"wq", "x"},
			Usage:       "wq",
			Description: "Save and quit",
			Run: func(app *App, args []string) {
				if err := app.Save(); err != nil {
					app.SetStatus("Failed to save: " + err.Error())
					return
				}
				app.Quit()
			},
		},
		{
			Names:       []string{"e", "edit"},
			Usage:       "e <file>",
			Description: "Open another timeline",
			Run: func(app *App, args []string) {
				if len(args) == 0 {
					app.SetStatus("Usage: :e <file>")
					return
				}
				if app.dirty {
					app.SetStatus("Unsaved changes! Save with :w first")
					return
				}
				if err := app.Open(args[0]); err != nil {
					app.SetStatus(err.Error())
					return
				}
				app.SetStatus("Opened " + args[0])
			},
		},
		{
			Names:       []string{"add"},
			Usage:       "add [start [stop [layer]]] [label]",
			Description: "Add an item; missing values are suggested",
			Run: func(app *App, args []string) {
				partial := parseAddArgs(args)
				if !app.layerInRange(partial) {
					app.SetStatus(fmt.Sprintf("Layer must be below %d", app.ctrl.Geometry().Layers()))
					return
				}
				app.ctrl.Add(partial)
				app.SetStatus("Added item")
			},
		},
		{
			Names:       []string{"dup", "duplicate"},
			Usage:       "dup",
			Description: "Duplicate the active item",
			Run: func(app *App, args []string) {
				if app.requireActive() {
					app.ctrl.DuplicateCurrent()
				}
			},
		},
		{
			Names:       []string{"del", "delete"},
			Usage:       "del",
			Description: "Delete the active item",
			Run: func(app *App, args []string) {
				if app.requireActive() {
					app.ctrl.DeleteCurrent()
				}
			},
		},
		{
			Names:       []string{"set"},
			Usage:       "set <field> <value>",
			Description: "Change a field of the active item",
			Run: func(app *App, args []string) {
				if len(args) < 2 {
					app.SetStatus("Usage: :set <field> <value>")
					return
				}
				if app.requireActive() {
					app.ctrl.ChangeField(args[0], strings.Join(args[1:], " "))
				}
			},
		},
		{
			Names:       []string{"title"},
			Usage:       "title <text>",
			Description: "Rename the timeline",
			Run: func(app *App, args []string) {
				if len(args) == 0 {
					app.SetStatus("Title: " + app.title)
					return
				}
				app.title = strings.Join(args, " ")
				app.dirty = true
			},
		},
		{
			Names:       []string{"export"},
			Usage:       "export svg|md|yaml [file]",
			Description: "Export the timeline",
			Run: func(app *App, args []string) {
				app.exportTo(args)
			},
		},
		{
			Names:       []string{"import"},
			Usage:       "import <file>",
			Description: "Add the items of a YAML or line list file",
			Run: func(app *App, args []string) {
				app.importFrom(args)
			},
		},
		{
			Names:       []string{"backups"},
			Usage:       "backups",
			Description: "Restore an earlier version of this file",
			Run: func(app *App, args []string) {
				app.showBackups()
			},
		},
		{
			Names:       []string{"theme"},
			Usage:       "theme <name>",
			Description: "Switch the color theme",
			Run: func(app *App, args []string) {
				if len(args) == 0 {
					app.SetStatus("Theme: " + app.screen.Theme.Name)
					return
				}
				t := theme.Builtin(args[0])
				if t == nil {
					var err error
					if t, err = theme.LoadTheme(args[0]); err != nil {
						app.SetStatus(err.Error())
						return
					}
				}
				app.screen.Theme = t
			},
		},
		{
			Names:       []string{"config"},
			Usage:       "config [key [value]]",
			Description: "Show or set a setting for this session",
			Run: func(app *App, args []string) {
				switch len(args) {
				case 0:
					all := app.cfg.GetAll()
					keys := make([]string, 0, len(all))
					for k, v := range all {
						keys = append(keys, k+"="+v)
					}
					slices.Sort(keys)
					app.SetStatus(strings.Join(keys, " "))
				case 1:
					app.SetStatus(args[0] + "=" + app.cfg.Get(args[0]))
				default:
					app.cfg.Set(args[0], strings.Join(args[1:], " "))
				}
			},
		},
		{
			Names:       []string{"debug"},
			Usage:       "debug",
			Description: "Write the editor state to the log",
			Run: func(app *App, args []string) {
				app.logger.Info("editor state\n" + debugConfig.Sdump(app.ctrl.State(), app.items.Snapshot()))
				app.SetStatus("State written to the log")
			},
		},
		{
			Names:       []string{"help", "h"},
			Usage:       "help",
			Description: "Show keys and commands",
			Run: func(app *App, args []string) {
				app.help.Toggle()
			},
		},
	}
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}
	for _, c := range a.commands {
		if slices.Contains(c.Names, parts[0]) {
			c.Run(a, parts[1:])
			return
		}
	}
	a.SetStatus("Unknown command: " + parts[0])
}

// parseAddArgs reads up to three leading numbers as start, stop and layer;
// everything after them is the label
func parseAddArgs(args []string) model.Partial {
	var p model.Partial
	fields := []**int{&p.Start, &p.Stop, &p.Priority}
	i := 0
	for ; i < len(args) && i < len(fields); i++ {
		n, err := strconv.Atoi(args[i])
		if err != nil || (i == 2 && n < 0) {
			break
		}
		*fields[i] = model.Int(n)
	}
	p.Label = strings.Join(args[i:], " ")
	return p
}

func (a *App) exportTo(args []string) {
	if len(args) == 0 {
		a.SetStatus("Usage: :export svg|md|yaml [file]")
		return
	}
	format, err := export.ParseFormat(args[0])
	if err != nil {
		a.SetStatus(err.Error())
		return
	}
	path := ""
	if len(args) > 1 {
		path = args[1]
	} else {
		dir, _ := os.Getwd()
		path = export.DefaultFilename(dir, a.title, format, a.clock.Now())
	}

	opts := export.Options{
		Geometry: a.cfg.Layout(),
		Theme:    a.screen.Theme,
		ActiveID: a.ctrl.State().ActiveID,
	}
	if err := export.ToFile(path, format, a.Timeline(), opts); err != nil {
		a.SetStatus(err.Error())
		return
	}
	a.SetStatus("Exported to " + path)
}

func (a *App) importFrom(args []string) {
	if len(args) == 0 {
		a.SetStatus("Usage: :import <file>")
		return
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		a.SetStatus(fmt.Sprintf("Failed to read %s: %v", args[0], err))
		return
	}
	result, err := importer.ImportFile(string(content), importer.DetectFormat(args[0]))
	if err != nil {
		a.SetStatus(err.Error())
		return
	}
	for _, partial := range result.Items {
		a.ctrl.Add(partial)
	}
	a.SetStatus(fmt.Sprintf("Imported %d items", len(result.Items)))
}

// parseCommand splits a command line into words. Single or double quotes
// group words, and a backslash escapes the next character.
func parseCommand(input string) []string {
	var (
		parts   []string
		current strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)
	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}
