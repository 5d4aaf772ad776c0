package cmd

import (
	"os/signal"
	"syscall"

	"github.com/mittwald/lcms-probe/pkg/probe"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var listenPort int

func init() {
	serve.Flags().IntVarP(&listenPort, "listen-port", "p", 9102, "set the port to listen for status requests")
	rootCmd.AddCommand(serve)
}

var serve = &cobra.Command{
	Use:   "serve",
	Short: "Probe the backend and serve the outcome over HTTP",
	Long:  "This sub-command probes the backend once, checks the configured backing services on demand and serves both on /status and /v1/watch",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		backend, err := probe.NewConnectionProbe(cfg.Backend)
		if err != nil {
			return err
		}
		defer backend.Dispose()

		handler, err := probe.NewHandler(backend, cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			backend.Dispose()
		}()

		backend.Initialize(commandContext(cmd))

		log.Infof("status server listens on port %d", listenPort)
		if err := probe.RunServer(ctx, handler, listenPort); err != nil {
			return err
		}

		log.Info("status server stopped without error")
		return nil
	},
}
