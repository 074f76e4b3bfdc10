// Command lifectl runs maintenance tasks against the configured database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lifetracker/config"
	pkgconfig "lifetracker/pkg/config"
	"lifetracker/pkg/logger"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "lifectl",
	Short:         "Maintenance commands for the life tracker backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", pkgconfig.GetEnv("CONFIG_DIR", "config"), "directory holding base.yaml and environment overrides")
	rootCmd.AddCommand(migrateCmd, addUserCmd, cleanupTrackingCmd)
}

// setup loads configuration and a logger for a single command run.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.NewLoggerWithLevel(cfg.Log.Level), nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
