package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hourbook-app/hourbook/internal/app/porter"
	"github.com/hourbook-app/hourbook/internal/domain"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().String("user", "", "login name of the owner (required)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	importCmd.Flags().String("user", "", "login name of the owner (required)")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's time entries as CSV",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	owner, err := resolveUser(cmd, store)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return porter.Export(context.Background(), out, store, owner.ID)
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import time entries from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	owner, err := resolveUser(cmd, store)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	report, err := porter.Import(context.Background(), f, store, owner.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d entries (batch %s)\n", report.Imported, report.BatchID)
	for _, rej := range report.Rejected {
		fmt.Fprintf(os.Stderr, "  line %d rejected: %s\n", rej.Line, rej.Message)
	}
	if len(report.Rejected) > 0 {
		return fmt.Errorf("%d rows rejected", len(report.Rejected))
	}
	return nil
}

func resolveUser(cmd *cobra.Command, store domain.UserStore) (*domain.User, error) {
	name, _ := cmd.Flags().GetString("user")
	if name == "" {
		return nil, fmt.Errorf("--user is required")
	}
	u, err := store.UserByName(context.Background(), name)
	if err == domain.ErrUserNotFound {
		return nil, fmt.Errorf("user %q not found", name)
	}
	return u, err
}
