package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfrund/taskboard/internal/config"
	"github.com/nfrund/taskboard/internal/domain"
	"github.com/nfrund/taskboard/internal/server"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	userCmd.AddCommand(newUserCreateCmd())
	return userCmd
}

func newUserCreateCmd() *cobra.Command {
	var email, name, password string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user through the configured authentication provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters long")
			}

			cfg, err := config.New()
			if err != nil {
				return err
			}
			if cfg.GetAuthBackend() == config.AuthBackendMemory {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: AUTH_BACKEND=memory, the account only lives as long as this command")
			}

			ctx := cmd.Context()
			provider, closeProvider, err := server.NewAuthProvider(ctx, cfg, slog.Default())
			if err != nil {
				return err
			}
			defer closeProvider(ctx)

			user, err := provider.SignUp(ctx, email, name, password)
			if errors.Is(err, domain.ErrUserAlreadyExists) {
				return fmt.Errorf("a user with email %s already exists", email)
			}
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	createCmd.Flags().StringVar(&email, "email", "", "email address of the new user")
	createCmd.Flags().StringVar(&name, "name", "", "display name")
	createCmd.Flags().StringVar(&password, "password", "", "initial password (min 8 characters)")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	return createCmd
}
