package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-timeline/internal/diff"
	"github.com/pstuifzand/tui-timeline/internal/storage"
)

var diffStyles = map[diff.LineType]lipgloss.Style{
	diff.LineHeader:  lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")).Bold(true),
	diff.LineAdded:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
	diff.LineRemoved: lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
	diff.LineChanged: lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")),
	diff.LineDetail:  lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
	diff.LineSummary: lipgloss.NewStyle().Bold(true),
}

func newDiffCmd(opts *options) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show what changed between two timeline files or backups",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			older, err := storage.Open(args[0]).Load()
			if err != nil {
				return err
			}
			newer, err := storage.Open(args[1]).Load()
			if err != nil {
				return err
			}

			result := diff.Compare(older, newer)
			if result.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
			for _, line := range diff.BuildLines(result, verbose) {
				text := strings.Repeat("  ", line.Indent) + line.Content
				if style, ok := diffStyles[line.Type]; ok {
					text = style.Render(text)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the old and new value of every changed field")
	return cmd
}
