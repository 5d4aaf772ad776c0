package cmd

import (
	"fmt"

	"github.com/mittwald/lcms-probe/pkg/cli"
	"github.com/mittwald/lcms-probe/pkg/probe"
	"github.com/mittwald/lcms-probe/pkg/view"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watch)
}

var watch = &cobra.Command{
	Use:   "watch",
	Short: "Follow the state of a running probe server",
	Long:  "This sub-command connects to a running \"lcms-probe serve\" and renders every state change of the backend probe until it settles.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		err := cli.NewAPIClient(apiAddress).Watch().Stream(commandContext(cmd), func(state probe.State) error {
			_, err := fmt.Fprintln(out, view.Render(state))
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", apiAddress, err)
		}

		return nil
	},
}
