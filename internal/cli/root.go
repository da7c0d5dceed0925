// Package cli holds the tut command line: the editor itself and the
// scriptable subcommands around it.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-timeline/internal/app"
	"github.com/pstuifzand/tui-timeline/internal/config"
	"github.com/pstuifzand/tui-timeline/internal/history"
	"github.com/pstuifzand/tui-timeline/internal/socket"
	"github.com/pstuifzand/tui-timeline/internal/storage"
	"github.com/pstuifzand/tui-timeline/internal/theme"
	"github.com/pstuifzand/tui-timeline/internal/ui"
)

type options struct {
	ConfigPath string
	LogFile    string
	Debug      bool

	cfg *config.Config
}

// NewRootCmd builds the tut command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "tut [file]",
		Short:        "Terminal timeline editor",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Edit a timeline (JSON, or SQLite for .db files)
  tut plan.json

  # Add an item to the running editor
  tut add --start 100 --stop 250 "Design review"

  # Render a timeline
  tut export plan.json --format svg
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to read .env: %w", err)
			}
			cfg, err := loadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := ""
			if len(args) > 0 {
				filePath = args[0]
			}
			return runEditor(opts, filePath)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to config.toml (default ~/.config/tui-timeline/config.toml)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "tut.log", "File the editor logs to")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Log at debug level")

	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newDiffCmd(opts))

	return cmd
}

// Execute runs the root command with os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func runEditor(opts *options, filePath string) error {
	cfg := opts.cfg

	logFile, err := os.Create(opts.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	level := cfg.LogLevel
	if opts.Debug {
		level = "debug"
	}
	logger := newLogger(logFile, level)
	slog.SetDefault(logger)

	screen, err := ui.NewScreen(resolveTheme(cfg.Theme, logger))
	if err != nil {
		return err
	}

	appOpts := app.Options{
		Config:   cfg,
		Screen:   screen,
		FilePath: filePath,
		Logger:   logger,
	}

	if cfg.Display.Backups {
		if appOpts.Backups, err = storage.NewBackupManager(); err != nil {
			logger.Warn("backups disabled", "err", err)
		}
	}
	if appOpts.History, err = history.NewManager(); err != nil {
		logger.Warn("history is not persisted", "err", err)
	}

	server, err := socket.NewServer(os.Getpid(), logger)
	if err != nil {
		logger.Warn("socket server unavailable", "err", err)
	} else {
		server.Start()
		defer server.Stop()
		appOpts.Messages = server.Messages()
	}

	application, err := app.New(appOpts)
	if err != nil {
		_ = screen.Close()
		return err
	}

	if err := application.Run(); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

// newLogger writes text logs to w at the named level; unknown names log at info
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel == slog.LevelDebug,
	}))
}

func resolveTheme(name string, logger *slog.Logger) *theme.Theme {
	if t := theme.Builtin(name); t != nil {
		return t
	}
	t, err := theme.LoadTheme(name)
	if err != nil {
		logger.Warn("theme not found, using default", "theme", name, "err", err)
		return theme.TokyoNight()
	}
	return t
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
