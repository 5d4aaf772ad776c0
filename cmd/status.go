package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/lcms-probe/pkg/cli"
	"github.com/mittwald/lcms-probe/pkg/probe"
	"github.com/mittwald/lcms-probe/pkg/view"
	"github.com/spf13/cobra"
)

var apiAddress string

func init() {
	status.Flags().BoolP("json", "j", false, "print the status response as JSON")
	status.Flags().Bool("exit-with-status", false, "exit with status code 1 unless the backend and all backing services are healthy")
	status.Flags().StringVar(&apiAddress, "api-address", cli.DefaultAPIAddress, "address of a running \"lcms-probe serve\"")

	watch.Flags().StringVar(&apiAddress, "api-address", cli.DefaultAPIAddress, "address of a running \"lcms-probe serve\"")

	rootCmd.AddCommand(status)
}

var styleSectionHeading = lipgloss.NewStyle().Bold(true).MarginTop(1)

var status = &cobra.Command{
	Use:   "status",
	Short: "Show the state of a running probe server",
	Long:  "This sub-command queries the status endpoint of a running \"lcms-probe serve\" and renders the backend state and backing service results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).Status(commandContext(cmd))
		if resp.Err() != nil {
			return fmt.Errorf("failed to get status from %s: %w", apiAddress, resp.Err())
		}

		exitWithStatus, _ := cmd.Flags().GetBool("exit-with-status")

		if printJSON, _ := cmd.Flags().GetBool("json"); printJSON {
			if err := resp.Print(cmd.OutOrStdout(), !noColor); err != nil {
				return fmt.Errorf("failed to print output: %w", err)
			}
		} else {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, view.Render(resp.Body.Backend))
			fmt.Fprintln(out, styleSectionHeading.Render("Backing services:"))
			fmt.Fprintln(out, view.RenderProbes(resp.Body.Probes))

			if resp.Body.Backend.Phase == probe.PhaseLoading {
				fmt.Fprintln(out, renderHint(
					"The backend has not answered yet. To follow the probe, you can use the following command:",
					cmd.Root().CommandPath()+" watch --api-address "+apiAddress,
				))
			}
		}

		if exitWithStatus && !resp.Body.Healthy() {
			return errUnhealthy
		}

		return nil
	},
}
