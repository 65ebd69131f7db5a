package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/mcp"
	"github.com/rcliao/certimatch/internal/triage"
)

func triageCmd(a *app) *cobra.Command {
	var (
		itemsPath string
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "List the top open action items by priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			market := a.cfg.DefaultMarket
			items := a.services.Catalog.SeedRemediation(market)
			if itemsPath != "" {
				loaded, err := loadItems(itemsPath)
				if err != nil {
					return err
				}
				items = loaded
			}
			if limit <= 0 {
				limit = a.cfg.TriageLimit
			}

			fmt.Fprintln(cmd.OutOrStdout(), mcp.FormatTriageAsMarkdown(market, triage.TopOpen(items, limit)))
			fmt.Fprintf(cmd.OutOrStdout(), "\n완료율: %d%%\n", triage.CompletionRate(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&itemsPath, "items", "", "YAML or JSON file with action items (defaults to the market's diagnosis results)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of items (defaults to triage_limit)")
	return cmd
}

// loadItems reads a YAML or JSON list of action items.
func loadItems(path string) ([]domain.RemediationItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	var items []domain.RemediationItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	return items, nil
}
