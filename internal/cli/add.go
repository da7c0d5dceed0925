package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/socket"
)

func newAddCmd(opts *options) *cobra.Command {
	var (
		start, stop, layer int
		attrs              map[string]string
	)

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add an item to the running editor",
		Long: strings.TrimSpace(`
Sends an item to the most recently started tut instance. Placement flags
that are left out get suggested by the editor, after the last item.
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.TrimSpace(strings.Join(args, " "))
			if label == "" {
				return errors.New("label cannot be empty")
			}

			partial := model.Partial{Label: label, Attributes: attrs}
			if cmd.Flags().Changed("start") {
				partial.Start = model.Int(start)
			}
			if cmd.Flags().Changed("stop") {
				partial.Stop = model.Int(stop)
			}
			if cmd.Flags().Changed("layer") {
				if layer < 0 {
					return fmt.Errorf("layer must not be negative, got %d", layer)
				}
				partial.Priority = model.Int(layer)
			}

			client, err := connect()
			if err != nil {
				return err
			}
			response, err := client.SendAddItem(partial)
			if err != nil {
				return fmt.Errorf("failed to send command: %w", err)
			}
			if !response.Success {
				return fmt.Errorf("server error: %s", response.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Item added")
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "Start of the item")
	cmd.Flags().IntVar(&stop, "stop", 0, "Stop of the item")
	cmd.Flags().IntVar(&layer, "layer", 0, "Layer (priority) of the item")
	cmd.Flags().StringToStringVar(&attrs, "attr", nil, "Attributes as key=value")
	return cmd
}

func connect() (*socket.Client, error) {
	socketPath, _, err := socket.FindRunningInstance()
	if err != nil {
		return nil, err
	}
	return socket.NewClient(socketPath)
}
