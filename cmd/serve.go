// File: cmd/serve.go
package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/depscope/depscope-cli/internal/config"
	"github.com/depscope/depscope-cli/internal/observability"
	"github.com/depscope/depscope-cli/internal/server"
	"github.com/depscope/depscope-cli/internal/visualize"
)

// newServeCmd creates and configures the `serve` command.
func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the HTTP inspection service",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags so CLI values override config file and env.
			if err := viper.BindPFlag("server.port", cmd.Flags().Lookup("port")); err != nil {
				return err
			}
			if err := viper.BindPFlag("engine.probe_concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			probeImpl, err := buildProbe(cfg, logger)
			if err != nil {
				return err
			}

			store, err := visualize.NewFileStore(cfg.Artifact.Dir, cfg.Artifact.Filename, logger)
			if err != nil {
				return err
			}

			srv, err := server.New(
				cfg.Server,
				logger,
				buildEngine(cfg, logger),
				probeImpl,
				visualize.NewDOT(logger),
				store,
				prometheus.NewRegistry(),
			)
			if err != nil {
				return fmt.Errorf("failed to construct server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx)
		},
	}

	serveCmd.Flags().Int("port", 5001, "port to listen on")
	serveCmd.Flags().Int("concurrency", 10, "maximum in-flight health probes per traversal")
	return serveCmd
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}
