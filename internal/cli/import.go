package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	importer "github.com/pstuifzand/tui-timeline/internal/import"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/storage"
)

func newImportCmd(opts *options) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "import <source> <timeline>",
		Short: "Append the items of a YAML or line list file to a timeline",
		Long: `Reads items from <source> and appends them to <timeline>, which is
created when it does not exist yet. Items without a start, stop or layer
are placed after the last item, like items added in the editor.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, target := args[0], args[1]

			content, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", source, err)
			}
			format := importer.ImportFormat(formatName)
			if format == importer.FormatAuto {
				format = importer.DetectFormat(source)
			}
			result, err := importer.ImportFile(string(content), format)
			if err != nil {
				return err
			}

			store := storage.Open(target)
			tl, err := store.Load()
			if err != nil {
				return err
			}
			if !fileExists(target) && result.Title != "" {
				tl.Title = result.Title
			}

			existing := make([]model.Item, 0, len(tl.Items))
			for _, item := range tl.Items {
				existing = append(existing, *item)
			}
			placed := importer.Place(existing, result.Items, opts.cfg.Layout(), opts.cfg.Placement())
			for i := range placed {
				tl.Items = append(tl.Items, &placed[i])
			}

			if err := store.Save(tl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into %s\n", len(placed), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", string(importer.FormatAuto), "Source format (auto|yaml|lines)")
	return cmd
}
