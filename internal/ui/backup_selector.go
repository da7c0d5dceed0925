package ui

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-timeline/internal/diff"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/storage"
)

// BackupSelector lists the backups of the open file, newest first, with a
// preview of what restoring the selected one would change
type BackupSelector struct {
	visible  bool
	backups  []storage.BackupMetadata
	selected int
	scroll   int
	current  *model.Timeline
	preview  []diff.Line
	load     func(path string) (*model.Timeline, error)
}

// NewBackupSelector creates a selector reading backups from disk
func NewBackupSelector() *BackupSelector {
	return &BackupSelector{load: storage.LoadBackup}
}

// Show opens the selector. backups are expected oldest first, as
// FindBackupsForFile returns them.
func (bs *BackupSelector) Show(backups []storage.BackupMetadata, current *model.Timeline) {
	if len(backups) == 0 {
		return
	}
	bs.backups = slices.Clone(backups)
	slices.Reverse(bs.backups)
	bs.current = current
	bs.selected = 0
	bs.scroll = 0
	bs.visible = true
	bs.updatePreview()
}

// Hide closes the selector
func (bs *BackupSelector) Hide() {
	bs.visible = false
}

// IsVisible returns whether the selector is open
func (bs *BackupSelector) IsVisible() bool {
	return bs.visible
}

// Selected returns the highlighted backup
func (bs *BackupSelector) Selected() (storage.BackupMetadata, bool) {
	if bs.selected < 0 || bs.selected >= len(bs.backups) {
		return storage.BackupMetadata{}, false
	}
	return bs.backups[bs.selected], true
}

// Preview returns the diff lines from the current timeline to the selected
// backup
func (bs *BackupSelector) Preview() []diff.Line {
	return bs.preview
}

func (bs *BackupSelector) updatePreview() {
	bs.preview = nil
	backup, ok := bs.Selected()
	if !ok || bs.current == nil {
		return
	}
	restored, err := bs.load(backup.FilePath)
	if err != nil {
		slog.Warn("failed to load backup for preview", "path", backup.FilePath, "err", err)
		bs.preview = []diff.Line{{Type: diff.LineRemoved, Content: "cannot read backup: " + err.Error()}}
		return
	}
	bs.preview = diff.BuildLines(diff.Compare(bs.current, restored), true)
}

// HandleKey processes a key. It returns the backup to restore when the user
// confirms with Enter.
func (bs *BackupSelector) HandleKey(ev *tcell.EventKey) (storage.BackupMetadata, bool) {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
		bs.Hide()
	case ev.Key() == tcell.KeyEnter:
		backup, ok := bs.Selected()
		bs.Hide()
		return backup, ok
	case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
		if bs.selected < len(bs.backups)-1 {
			bs.selected++
			bs.updatePreview()
		}
	case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
		if bs.selected > 0 {
			bs.selected--
			bs.updatePreview()
		}
	}
	return storage.BackupMetadata{}, false
}

// Render draws the list on the left and the preview on the right
func (bs *BackupSelector) Render(screen *Screen) {
	if !bs.visible {
		return
	}
	width, height := screen.Size()
	screen.Fill(0, 0, width, height, ' ', screen.HelpStyle())

	left := width / 2
	rows := height - 3
	if left < 20 || rows < 3 {
		return
	}

	screen.DrawStringLimited(1, 0, fmt.Sprintf(" Backups (%d) ", len(bs.backups)), left-2, screen.HelpTitleStyle())
	screen.DrawStringLimited(left+1, 0, " Restoring changes ", width-left-2, screen.HelpTitleStyle())

	if bs.selected < bs.scroll {
		bs.scroll = bs.selected
	}
	if bs.selected >= bs.scroll+rows {
		bs.scroll = bs.selected - rows + 1
	}
	for i := 0; i < rows && bs.scroll+i < len(bs.backups); i++ {
		idx := bs.scroll + i
		b := bs.backups[idx]
		line := fmt.Sprintf("%s (%s)", b.Timestamp.Format("2006-01-02 15:04:05"), b.SessionID)
		style := screen.HelpStyle()
		if idx == bs.selected {
			style = screen.ItemStyle(true, false, false)
		}
		screen.DrawStringLimited(1, 2+i, PadStringToWidth(line, left-2), left-2, style)
	}

	for i, line := range bs.preview {
		if i >= rows {
			break
		}
		x := left + 1 + 2*line.Indent
		screen.DrawStringLimited(x, 2+i, line.Content, width-x-1, bs.lineStyle(screen, line.Type))
	}

	screen.DrawStringLimited(1, height-1, "j/k: select  Enter: restore  Esc: cancel", width-2, screen.StatusMessageStyle())
}

func (bs *BackupSelector) lineStyle(screen *Screen, t diff.LineType) tcell.Style {
	switch t {
	case diff.LineHeader, diff.LineSummary:
		return screen.HelpTitleStyle()
	case diff.LineAdded:
		return screen.StatusMessageStyle()
	case diff.LineRemoved:
		return screen.StatusModifiedStyle()
	case diff.LineChanged:
		return screen.FormLabelStyle()
	}
	return screen.HelpStyle()
}
