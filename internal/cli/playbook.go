package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/certimatch/internal/playbook"
)

func playbookCmd(a *app) *cobra.Command {
	var rules bool
	cmd := &cobra.Command{
		Use:   "playbook <task>",
		Short: "Build the improvement playbook for a FAIL task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.Join(args, " ")
			pb := a.services.Playbooks.ForTask(task)
			fmt.Fprintln(cmd.OutOrStdout(), playbook.Render(pb))

			if rules {
				fired := a.services.Playbooks.Builder().Fired(task)
				fmt.Fprintf(cmd.OutOrStdout(), "\nrules: %s\n", strings.Join(fired, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&rules, "rules", false, "Also print the names of the rules that fired")
	return cmd
}
