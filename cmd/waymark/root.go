package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/waymark"
	"github.com/aretw0/waymark/internal/cli"
	"github.com/aretw0/waymark/internal/logging"
	"github.com/aretw0/waymark/internal/metrics"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "waymark",
	Short: "waymark renders resources with hypermedia links",
	Long: `waymark embeds one link per currently permitted state transition into the
JSON, XML or YAML representation of a resource. Resource kinds and their
transitions are declared in a catalog file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file (default: catalog.yaml in the current directory)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// newEngine builds the engine from the persistent flags.
func newEngine(cmd *cobra.Command, logger *slog.Logger, rec *metrics.Recorder) (*waymark.Engine, error) {
	path, _ := cmd.Flags().GetString("catalog")
	level, _ := cmd.Flags().GetString("log-level")

	return cli.CreateEngine(cli.EngineOptions{
		CatalogPath: path,
		Debug:       level == "debug",
		Metrics:     rec,
	}, logger)
}
