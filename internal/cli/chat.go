package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rcliao/certimatch/internal/chat"
	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/tui"
)

func chatCmd(a *app) *cobra.Command {
	var view string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the certification assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.currentProject()
			if err != nil {
				return err
			}
			if err := a.ensureDiagnosis(project); err != nil {
				return err
			}

			sessionID := a.services.Chat.Start()
			v := domain.View(view)
			ask := func(text string) (chat.Reply, error) {
				return a.services.Chat.Ask(sessionID, project.ID, v, text)
			}

			p := tea.NewProgram(tui.NewChatModel(ask, chat.Greeting), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&view, "view", string(domain.ViewDashboard), "Screen context (dashboard, diagnosis, docs, labs, settings)")
	return cmd
}

// ensureDiagnosis publishes the market's seed results when the project has
// no action items yet, as a finished diagnosis would.
func (a *app) ensureDiagnosis(project *domain.Project) error {
	items, err := a.services.Remediation.List(project.ID, "")
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	market := domain.SafeMarket(project.Market)
	if _, err := a.services.Remediation.Publish(project.ID, market, a.services.Catalog.SeedRemediation(market)); err != nil {
		return fmt.Errorf("failed to seed action items: %w", err)
	}
	return nil
}
