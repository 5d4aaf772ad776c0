package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mittwald/lcms-probe/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configDir string
	endpoint  string
	logLevel  string
	noColor   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "", "set directory to where your .hcl-configs are located")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "backend endpoint to probe (overrides backend.url)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored JSON output")
	addCheckFlags(rootCmd)
}

var rootCmd = &cobra.Command{
	Use:           "lcms-probe",
	Short:         "lcms-probe - connectivity probe for the Legal CMS backend",
	Long:          "lcms-probe checks whether the Legal Case Management System backend is reachable and answers its test endpoint",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		log.SetLevel(level)
		return nil
	},
	RunE: runCheck,
}

// loadConfig reads the configuration directory and applies command line
// overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from %q: %w", configDir, err)
	}

	if endpoint != "" {
		cfg.Backend.URL = endpoint
	}

	return cfg, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// errUnhealthy is returned by commands run with --exit-with-status when the
// reported state is not healthy. The output has already been printed.
var errUnhealthy = errors.New("backend is not healthy")

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUnhealthy) {
			fmt.Fprintln(os.Stderr, renderError(err))
		}
		os.Exit(1)
	}
}
