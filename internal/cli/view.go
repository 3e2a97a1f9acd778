package cli

import (
	"presskit-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view [YYYY-MM-DD]",
		Short: "Read an edition in the terminal (latest when no date given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := ""
			if len(args) == 1 {
				date = args[0]
			}
			return tui.RunViewer(app.Client(), date)
		},
	}
}
