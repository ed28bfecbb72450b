package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hourbook-app/hourbook/internal/auth"
	"github.com/hourbook-app/hourbook/internal/domain"
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)

	userAddCmd.Flags().String("name", "", "login name (required)")
	userAddCmd.Flags().String("display-name", "", "display name")
	userAddCmd.Flags().String("password", "", "password (required, min 8 characters)")
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage principals",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new user",
	RunE:  runUserAdd,
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	displayName, _ := cmd.Flags().GetString("display-name")
	password, _ := cmd.Flags().GetString("password")

	if name == "" {
		return fmt.Errorf("--name is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("--password must be at least 8 characters")
	}

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u := &domain.User{Name: name, DisplayName: displayName, PasswordHash: hash}
	if err := store.CreateUser(context.Background(), u); err != nil {
		if err == domain.ErrNameTaken {
			return fmt.Errorf("user %q already exists", name)
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "User %q created (id %d)\n", u.Name, u.ID)
	return nil
}
