package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// BackupExt is the extension of backup files
const BackupExt = ".tut"

const backupTimeFormat = "20060102_150405"

// BackupManager handles backup creation for timeline files
type BackupManager struct {
	backupDir string
	now       func() time.Time
}

// NewBackupManager creates a backup manager for the default backup directory
func NewBackupManager() (*BackupManager, error) {
	return NewBackupManagerIn(getBackupDir())
}

// NewBackupManagerIn creates a backup manager writing into dir
func NewBackupManagerIn(dir string) (*BackupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{
		backupDir: dir,
		now:       time.Now,
	}, nil
}

// Dir returns the backup directory
func (bm *BackupManager) Dir() string {
	return bm.backupDir
}

// CreateBackup writes a timestamped copy of the timeline, remembering the
// file it came from. It returns the backup path.
func (bm *BackupManager) CreateBackup(timeline *model.Timeline, originalPath string, sessionID string) (string, error) {
	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}

	backup := *timeline
	backup.OriginalFilename = absPath

	data, err := json.MarshalIndent(&backup, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup JSON: %w", err)
	}

	backupPath := filepath.Join(bm.backupDir, bm.generateBackupFilename(sessionID))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// generateBackupFilename creates a filename in the format: YYYYMMDD_HHMMSS_<sessionID>.tut
func (bm *BackupManager) generateBackupFilename(sessionID string) string {
	return bm.now().Format(backupTimeFormat) + "_" + sessionID + BackupExt
}

// GenerateSessionID returns a random 8-character ID for backup naming
func GenerateSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func getBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".tui-timeline", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "tui-timeline", "backups")
}

// GetBackupDir returns the default backup directory
func GetBackupDir() string {
	return getBackupDir()
}

// IsBackupFile reports whether filePath lies in the default backup directory
func IsBackupFile(filePath string) bool {
	if filePath == "" || !strings.HasSuffix(filePath, BackupExt) {
		return false
	}
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == filepath.Clean(getBackupDir())
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath     string
	Timestamp    time.Time
	SessionID    string
	OriginalFile string
}

// FindBackupsForFile returns the backups of originalFilePath, oldest first.
// An empty path returns all backups.
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var searchPath string
	if originalFilePath != "" {
		absPath, err := filepath.Abs(originalFilePath)
		if err != nil {
			absPath = originalFilePath
		}
		searchPath = filepath.Clean(absPath)
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), BackupExt) {
			continue
		}

		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(bm.backupDir, entry.Name()))
		if err != nil {
			continue
		}

		if searchPath != "" && filepath.Clean(metadata.OriginalFile) != searchPath {
			continue
		}

		backups = append(backups, metadata)
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return backups, nil
}

// LoadBackup reads a backup file
func LoadBackup(backupPath string) (*model.Timeline, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	var timeline model.Timeline
	if err := json.Unmarshal(data, &timeline); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	fillIDs(&timeline)
	return &timeline, nil
}

// parseBackupFilename extracts metadata from a backup filename
// Expected format: YYYYMMDD_HHMMSS_<sessionID>.tut
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	name := strings.TrimSuffix(filename, BackupExt)
	if len(name) < len(backupTimeFormat)+2 || name[len(backupTimeFormat)] != '_' {
		return BackupMetadata{}, fmt.Errorf("invalid backup filename %q", filename)
	}

	timestamp, err := time.ParseInLocation(backupTimeFormat, name[:len(backupTimeFormat)], time.Local)
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}

	var originalFile string
	if timeline, err := LoadBackup(fullPath); err == nil {
		originalFile = timeline.OriginalFilename
	}

	return BackupMetadata{
		FilePath:     fullPath,
		Timestamp:    timestamp,
		SessionID:    name[len(backupTimeFormat)+1:],
		OriginalFile: originalFile,
	}, nil
}
