// Package app runs the terminal editor: it owns the item collection, feeds
// terminal, socket and timer events to the interaction controller and draws
// the result.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"github.com/pstuifzand/tui-timeline/internal/config"
	"github.com/pstuifzand/tui-timeline/internal/editor"
	"github.com/pstuifzand/tui-timeline/internal/form"
	"github.com/pstuifzand/tui-timeline/internal/history"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/socket"
	"github.com/pstuifzand/tui-timeline/internal/storage"
	"github.com/pstuifzand/tui-timeline/internal/timeline"
	"github.com/pstuifzand/tui-timeline/internal/ui"
)

const (
	headerRows    = 1
	tickInterval  = 50 * time.Millisecond
	statusTimeout = 3 * time.Second
)

// Options configures an App. Only Config and Screen are required.
type Options struct {
	Config   *config.Config
	Screen   *ui.Screen
	FilePath string
	Clock    clockwork.Clock
	Logger   *slog.Logger
	// Backups is nil when no backups should be written
	Backups *storage.BackupManager
	// History is nil for in-memory command and search history
	History *history.Manager
	// Messages delivers remote commands, e.g. from a socket.Server
	Messages <-chan socket.Message
}

// App is the main application controller
type App struct {
	cfg    *config.Config
	screen *ui.Screen
	clock  clockwork.Clock
	logger *slog.Logger

	title     string
	filePath  string
	store     storage.Store
	backups   *storage.BackupManager
	sessionID string
	messages  <-chan socket.Message

	items       *timeline.Collection
	binding     *form.Binding
	ctrl        *editor.Controller
	unsubscribe func()

	view           *ui.TimelineView
	itemForm       *ui.ItemForm
	search         *ui.Search
	command        *ui.CommandMode
	help           *ui.HelpScreen
	status         *ui.MessageLogger
	backupSelector *ui.BackupSelector
	splash         *ui.SplashScreen

	keybindings []KeyBinding
	commands    []Command

	pressed    bool
	panning    *panGrab
	pendingKey rune // prefix of a two key sequence
	dirty      bool
	lastSave   time.Time
	quit       bool
}

type panGrab struct {
	col    int
	offset int
}

// New creates an App and loads opts.FilePath. An empty path starts an
// untitled timeline that is saved with ":w <file>".
func New(opts Options) (*App, error) {
	if opts.Config == nil || opts.Screen == nil {
		return nil, fmt.Errorf("app needs a config and a screen")
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		cfg:            opts.Config,
		screen:         opts.Screen,
		clock:          clock,
		logger:         logger,
		backups:        opts.Backups,
		sessionID:      storage.GenerateSessionID(),
		messages:       opts.Messages,
		view:           ui.NewTimelineView(headerRows, opts.Config.Display.UnitsPerColumn, opts.Config.Display.UnitsPerRow),
		help:           ui.NewHelpScreen(),
		status:         ui.NewMessageLogger(50, statusTimeout, clock),
		backupSelector: ui.NewBackupSelector(),
		splash:         ui.NewSplashScreen(),
		lastSave:       clock.Now(),
	}
	if opts.History != nil {
		a.command = ui.NewCommandModeWithHistory(opts.History)
		a.search = ui.NewSearchWithHistory(opts.History)
	} else {
		a.command = ui.NewCommandMode()
		a.search = ui.NewSearch()
	}

	a.keybindings = a.InitializeKeybindings()
	a.commands = a.InitializeCommands()
	a.help.SetKeybindings(helpEntries(a.keybindings), helpEntries(a.commands))

	tl := model.NewTimeline("Untitled")
	if opts.FilePath != "" {
		a.filePath = opts.FilePath
		a.store = storage.Open(opts.FilePath)
		loaded, err := a.store.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load timeline: %w", err)
		}
		tl = loaded
	}
	if err := a.setTimeline(tl); err != nil {
		return nil, err
	}
	if opts.FilePath == "" {
		a.splash.Show()
	}
	if a.isReadOnly() {
		a.SetStatus("Viewing a backup (read-only)")
	}

	a.ctrl.Mount(a.view.ViewportWidth(a.screen.GetWidth()))
	a.screen.EnableMouse()
	return a, nil
}

// setTimeline replaces the document being edited and rebuilds the
// collection, the form binding and the controller around it
func (a *App) setTimeline(tl *model.Timeline) error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}

	a.title = tl.Title
	a.items = timeline.FromTimeline(tl)
	a.binding = form.NewBinding(a.items, a.logger)
	a.binding.LimitLayers(a.cfg.Layout().Layers())
	a.itemForm = ui.NewItemForm(a.binding)

	width := 0
	if a.ctrl != nil {
		width = a.ctrl.State().ViewportWidth
	}
	ctrl, err := editor.New(editor.Options{
		Geometry:   a.cfg.Layout(),
		Placement:  a.cfg.Placement(),
		Source:     a.items,
		Dispatcher: a.items,
		Form:       a.binding,
		Cursor:     a.screen,
		Logger:     a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create editor: %w", err)
	}
	a.ctrl = ctrl
	if width > 0 {
		a.ctrl.Mount(width)
	}

	a.unsubscribe = a.items.Subscribe(a.onCommit)
	a.search.SetItems(a.items.Snapshot())
	a.view.CancelDrag()
	a.pressed = false
	a.panning = nil
	return nil
}

func (a *App) onCommit(snap model.Snapshot) {
	a.dirty = true
	a.splash.Hide()
	a.search.SetItems(snap)
	a.ctrl.Committed()
}

// Timeline returns the document as it would be saved
func (a *App) Timeline() *model.Timeline {
	return &model.Timeline{Title: a.title, Items: a.items.Items()}
}

// Controller returns the interaction controller
func (a *App) Controller() *editor.Controller {
	return a.ctrl
}

// IsDirty reports whether there are unsaved changes
func (a *App) IsDirty() bool {
	return a.dirty
}

// eventPoller is the part of the screen the poll goroutine reads from
type eventPoller interface {
	PollEvent() tcell.Event
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed
func pollEvents(screen eventPoller, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, events, done)

	ticker := a.clock.NewTicker(tickInterval)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.HandleEvent(ev)
		case msg, ok := <-a.messages:
			if !ok {
				a.messages = nil
				continue
			}
			a.handleSocketMessage(msg)
		case <-ticker.Chan():
			a.Tick()
		}
		a.render()
	}
	return nil
}

// Tick runs the timed work: autosave when there are unsaved changes
func (a *App) Tick() {
	interval := time.Duration(a.cfg.Display.AutosaveSecs) * time.Second
	if interval <= 0 || !a.dirty || a.store == nil || a.isReadOnly() {
		return
	}
	if a.clock.Since(a.lastSave) < interval {
		return
	}
	if err := a.Save(); err != nil {
		a.SetStatus("Failed to save: " + err.Error())
		a.lastSave = a.clock.Now()
		return
	}
	a.logger.Debug("autosaved", "path", a.filePath)
}

// Close unsubscribes from the collection and releases the terminal
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.logger.Debug("status", "msg", msg)
	a.status.AddMessage(msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// HasQuit reports whether the event loop will stop
func (a *App) HasQuit() bool {
	return a.quit
}

// render draws the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()
	geom := a.ctrl.Geometry()
	state := a.ctrl.State()
	snap := a.items.Snapshot()

	header := " " + a.title
	if a.filePath != "" {
		header += " (" + filepath.Base(a.filePath) + ")"
	}
	a.screen.DrawStringLimited(0, 0, header, width, a.screen.HeaderStyle())

	a.view.Render(a.screen, geom, snap, state, a.search)
	a.splash.Render(a.screen, headerRows)

	formRow := headerRows + a.view.Rows(geom) + 1
	if formRow < height-2 {
		a.itemForm.Render(a.screen, state.Active, formRow)
	}

	switch {
	case a.search.IsActive():
		a.search.Render(a.screen, height-2)
	case a.command.IsActive():
		a.command.Render(a.screen, height-2)
	}
	a.renderStatus(width, height-1)

	a.backupSelector.Render(a.screen)
	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderStatus(width, y int) {
	state := a.ctrl.State()
	mode := "-- " + state.String() + " --"
	if state.IsDragging() {
		mode = "-- DRAG --"
	} else if a.itemForm.IsEditing() {
		mode = "-- EDIT --"
	}
	x := a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())

	if msg, ok := a.status.Current(); ok {
		x = a.screen.DrawStringLimited(x+1, y, msg, width-x-12, a.screen.StatusMessageStyle())
	}
	if a.dirty {
		a.screen.DrawString(width-11, y, "(modified)", a.screen.StatusModifiedStyle())
	}
}
