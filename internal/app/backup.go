package app

import (
	"errors"
	"fmt"

	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/storage"
)

func (a *App) isReadOnly() bool {
	js, ok := a.store.(*storage.JSONStore)
	return ok && js.ReadOnly
}

// Save writes the timeline to its file. The previous contents of the file
// are backed up first when backups are enabled.
func (a *App) Save() error {
	if a.store == nil {
		return errors.New("no file name, use :w <file>")
	}
	tl := a.Timeline()

	if a.backups != nil && a.cfg.Display.Backups && !a.isReadOnly() {
		if previous, err := a.store.Load(); err == nil && len(previous.Items) > 0 {
			if path, err := a.backups.CreateBackup(previous, a.filePath, a.sessionID); err != nil {
				a.logger.Warn("failed to create backup", "path", a.filePath, "err", err)
			} else {
				a.logger.Debug("backup created", "backup", path)
			}
		}
	}

	if err := a.store.Save(tl); err != nil {
		return err
	}
	a.dirty = false
	a.lastSave = a.clock.Now()
	return nil
}

// SaveAs switches to filePath and saves there
func (a *App) SaveAs(filePath string) error {
	a.filePath = filePath
	a.store = storage.Open(filePath)
	return a.Save()
}

// Open loads filePath, replacing the current timeline
func (a *App) Open(filePath string) error {
	store := storage.Open(filePath)
	tl, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load timeline: %w", err)
	}
	if err := a.setTimeline(tl); err != nil {
		return err
	}
	a.filePath = filePath
	a.store = store
	a.dirty = false
	a.splash.Hide()
	return nil
}

// showBackups opens the backup selector for the current file
func (a *App) showBackups() {
	if a.filePath == "" {
		a.SetStatus("No file to find backups for")
		return
	}
	if a.backups == nil {
		a.SetStatus("Backups are disabled")
		return
	}
	backups, err := a.backups.FindBackupsForFile(a.filePath)
	if err != nil || len(backups) == 0 {
		a.SetStatus("No backups found for this file")
		return
	}
	a.backupSelector.Show(backups, a.Timeline())
}

// restoreBackup replaces the items with those of a backup. The file itself
// is only changed by the next save.
func (a *App) restoreBackup(backup storage.BackupMetadata) {
	restored, err := storage.LoadBackup(backup.FilePath)
	if err != nil {
		a.SetStatus(fmt.Sprintf("Failed to read backup: %v", err))
		return
	}
	a.replaceItems(restored)
	a.SetStatus(fmt.Sprintf("Restored backup from %s", backup.Timestamp.Format("2006-01-02 15:04:05")))
}

// replaceItems swaps the whole item set in one commit, keeping the file
func (a *App) replaceItems(tl *model.Timeline) {
	items := make([]model.Item, 0, len(tl.Items))
	for _, item := range tl.Items {
		if item != nil {
			items = append(items, *item)
		}
	}
	if tl.Title != "" {
		a.title = tl.Title
	}
	a.view.CancelDrag()
	if a.ctrl.State().IsDragging() {
		a.ctrl.CancelDrag()
	}
	a.items.Replace(items)
}
