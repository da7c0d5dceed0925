package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/search"
	"github.com/pstuifzand/tui-timeline/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	spanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

func newListCmd(opts *options) *cobra.Command {
	var (
		plain   bool
		filter  string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List the items of a file, or of the running editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []model.Item
			if len(args) > 0 {
				tl, err := storage.Open(args[0]).Load()
				if err != nil {
					return err
				}
				for _, item := range tl.Items {
					items = append(items, *item)
				}
			} else {
				client, err := connect()
				if err != nil {
					return err
				}
				if items, err = client.ListItems(); err != nil {
					return err
				}
			}

			expr, err := search.ParseQuery(filter)
			if err != nil {
				return fmt.Errorf("invalid filter: %w", err)
			}
			if explain {
				fmt.Fprintln(cmd.ErrOrStderr(), search.ExpressionString(expr))
				for _, item := range items {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", item.Label, search.Explain(item, expr))
				}
			}
			var matched []model.Item
			for _, idx := range search.Filter(expr, items) {
				matched = append(matched, items[idx])
			}
			items = matched

			slices.SortStableFunc(items, func(a, b model.Item) int {
				if a.Start != b.Start {
					return a.Start - b.Start
				}
				return a.Priority - b.Priority
			})

			if plain {
				return writePlain(cmd.OutOrStdout(), items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), itemTable(items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Tab separated output without styling")
	cmd.Flags().StringVarP(&filter, "filter", "q", "", `Only list matching items, e.g. "review s:>=100 @owner=ann"`)
	cmd.Flags().BoolVar(&explain, "explain", false, "Print why each item matches the filter or not")
	return cmd
}

func itemTable(items []model.Item) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("START", "STOP", "LAYER", "LABEL", "ATTRIBUTES").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < 2:
				return spanStyle
			}
			return cellStyle
		})

	for _, item := range items {
		t.Row(
			strconv.Itoa(item.Start),
			strconv.Itoa(item.Stop),
			strconv.Itoa(item.Priority),
			item.Label,
			formatAttributes(item.Attributes),
		)
	}
	return t.Render()
}

func writePlain(w io.Writer, items []model.Item) error {
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", item.Start, item.Stop, item.Priority, item.Label); err != nil {
			return err
		}
	}
	return nil
}

func formatAttributes(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + attrs[k]
	}
	return strings.Join(parts, " ")
}
