// Package cli implements the hourbook command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hourbook-app/hourbook/internal/daemon"
	"github.com/hourbook-app/hourbook/internal/infra/sqlite"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hourbook",
	Short: "Track and analyze daily work hours",
	Long: `hourbook is a single-user work-hour tracker: log entries against
tasks, browse them grouped by day, and view aggregated statistics.
Run 'hourbook serve' to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env next to the binary overrides nothing already exported.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.hourbook/config.toml)")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration for the current invocation.
func loadConfig() (daemon.Config, error) {
	return daemon.Load(configPath)
}

// openStore opens (and migrates) the configured database.
func openStore() (*sqlite.Store, daemon.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return store, cfg, nil
}
