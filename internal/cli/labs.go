package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/certimatch/internal/mcp"
	"github.com/rcliao/certimatch/internal/service"
)

func labsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "labs [total|tech|cost|time|dist]",
		Short: "Rank domestic testing laboratories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) > 0 {
				raw = args[0]
			}
			criterion := service.ParseCriterion(raw)
			fmt.Fprintln(cmd.OutOrStdout(), mcp.FormatLabsAsMarkdown(criterion, a.services.Labs.Rank(criterion)))
			return nil
		},
	}
}
