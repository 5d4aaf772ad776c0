package cmd

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/mittwald/lcms-probe/pkg/probe"
	"github.com/mittwald/lcms-probe/pkg/view"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	addCheckFlags(check)
	rootCmd.AddCommand(check)
}

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "print the final probe state as JSON")
	cmd.Flags().String("format", "", "print the final probe state using a Go template (sprig functions available)")
	cmd.Flags().Bool("exit-with-status", false, "exit with status code 1 unless the backend is connected")
}

var check = &cobra.Command{
	Use:   "check",
	Short: "Probe the backend once and render the outcome",
	Long:  "This sub-command sends a single request to the backend test endpoint and renders the loading, success or failure state.",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backend, err := probe.NewConnectionProbe(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Dispose()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	format, _ := cmd.Flags().GetString("format")
	exitWithStatus, _ := cmd.Flags().GetBool("exit-with-status")

	out := cmd.OutOrStdout()
	interactive := !jsonOutput && format == ""

	if interactive {
		fmt.Fprintln(out, view.Render(backend.State()))
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend.Initialize(commandContext(cmd))

	state, err := backend.Wait(ctx)
	if err != nil {
		backend.Dispose()
		log.WithError(err).Warn("probe interrupted before the backend answered")
		return errors.New("interrupted while connecting to backend")
	}

	if err := printState(out, state, jsonOutput, format); err != nil {
		return err
	}

	if exitWithStatus && state.Phase != probe.PhaseSuccess {
		return errUnhealthy
	}

	return nil
}

func printState(out io.Writer, state probe.State, jsonOutput bool, format string) error {
	switch {
	case format != "":
		rendered, err := view.RenderTemplate(format, state)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
	case jsonOutput:
		rendered, err := view.RenderJSON(state, !noColor)
		if err != nil {
			return fmt.Errorf("failed to print output: %w", err)
		}
		fmt.Fprintln(out, rendered)
	default:
		fmt.Fprintln(out, view.Render(state))
	}

	return nil
}
