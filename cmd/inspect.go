// File: cmd/inspect.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
	"github.com/depscope/depscope-cli/internal/config"
	"github.com/depscope/depscope-cli/internal/depgraph"
	"github.com/depscope/depscope-cli/internal/ingest"
	"github.com/depscope/depscope-cli/internal/observability"
	"github.com/depscope/depscope-cli/internal/report"
	"github.com/depscope/depscope-cli/internal/visualize"
)

// newInspectCmd creates the one-shot `inspect` command: read a system
// description from a file, traverse it, print the health table, and write
// the graph artifact.
func newInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <system.json>",
		Short: "Inspects a system description file and prints a health report",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("engine.probe_concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			if err := viper.BindPFlag("probe.latency", cmd.Flags().Lookup("probe-latency")); err != nil {
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

			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			desc, err := ingest.Decode(payload)
			if err != nil {
				return err
			}
			graph := depgraph.Build(desc, logger)

			probeImpl, err := buildProbe(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := buildEngine(cfg, logger).Traverse(ctx, graph, probeImpl)
			if err != nil && !errors.Is(err, schemas.ErrPartialResult) {
				return err
			}

			if result.Partial {
				fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: traversal was interrupted; this report is partial.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Render(result.Records))

			// The artifact is best-effort: a rendering failure must not
			// swallow the report that was just printed.
			store, err := visualize.NewFileStore(cfg.Artifact.Dir, cfg.Artifact.Filename, logger)
			if err != nil {
				logger.Warn("Artifact store unavailable", zap.Error(err))
				return nil
			}
			dot, err := visualize.NewDOT(logger).Render(graph)
			if err != nil {
				logger.Warn("Graph rendering failed", zap.Error(err))
				return nil
			}
			path, err := store.Put(dot)
			if err != nil {
				logger.Warn("Failed to store graph artifact", zap.Error(err))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nGraph artifact: %s\n", path)
			return nil
		},
	}

	inspectCmd.Flags().Int("concurrency", 10, "maximum in-flight health probes")
	inspectCmd.Flags().Duration("probe-latency", 0, "artificial latency of the fixed probe")
	return inspectCmd
}

func init() {
	rootCmd.AddCommand(newInspectCmd())
}
