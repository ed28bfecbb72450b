package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hourbook-app/hourbook/internal/api"
	"github.com/hourbook-app/hourbook/internal/app/stats"
	"github.com/hourbook-app/hourbook/internal/auth"
	"github.com/hourbook-app/hourbook/internal/infra/observability"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hourbook HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	authn := auth.New(cfg.Auth.Secret, cfg.Auth.TTL())
	statsSvc := stats.NewService(store, nil)

	server := api.NewServer(store, store, statsSvc, authn)
	if cfg.Metrics.Enabled {
		server.EnableMetrics(observability.NewMetrics())
	}

	addr := cfg.API.Addr()
	log.Printf("hourbook listening on http://%s (db: %s)", addr, cfg.Database.Path)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
