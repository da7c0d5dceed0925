package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-timeline/internal/export"
	"github.com/pstuifzand/tui-timeline/internal/storage"
)

func newExportCmd(opts *options) *cobra.Command {
	var formatName, out string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a timeline as SVG, Markdown or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := storage.Open(args[0]).Load()
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			exportOpts := export.Options{
				Geometry: opts.cfg.Layout(),
				Theme:    resolveTheme(opts.cfg.Theme, slogDiscard()),
			}
			if out == "-" {
				return export.Write(cmd.OutOrStdout(), format, tl, exportOpts)
			}
			if out == "" {
				out = export.DefaultFilename(filepath.Dir(args[0]), tl.Title, format, time.Now())
			}
			if err := export.ToFile(out, format, tl, exportOpts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(tl.Items), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "svg", "Output format (svg|md|yaml)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout (default: named after the title)")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
