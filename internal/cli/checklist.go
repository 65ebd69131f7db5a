package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/certimatch/internal/checklist"
	"github.com/rcliao/certimatch/internal/mcp"
	"github.com/rcliao/certimatch/internal/tui"
)

func checklistCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "checklist [file]...",
		Short: "Match file names against the market's required document list",
		RunE: func(cmd *cobra.Command, args []string) error {
			market := a.cfg.DefaultMarket
			result := checklist.Evaluate(a.services.Catalog.RequiredDocs(market), args)

			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), mcp.FormatChecklistAsMarkdown(result))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderChecklist(a.services.Catalog.Label(market), result, 40))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print markdown instead of the styled panel")
	return cmd
}
