package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/fintrack/internal/models"
)

func newGrantAdminCmd(opts *options) *cobra.Command {
	var (
		userRef string
		revoke  bool
	)

	cmd := &cobra.Command{
		Use:   "grant-admin",
		Short: "Grant or revoke the admin role",
		Long: `Set a user's role. The new role takes effect at the user's next sign-in.

Example:
  fintrack grant-admin --user ada@example.com
  fintrack grant-admin --user ada@example.com --revoke`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := resolveUser(ctx, a, userRef)
			if err != nil {
				return err
			}
			if user.Anonymous {
				return fmt.Errorf("anonymous users cannot hold roles")
			}

			role := models.RoleAdmin
			if revoke {
				role = models.RoleUser
			}
			if err := a.Store.SetUserRole(ctx, user.ID, role); err != nil {
				return err
			}

			slog.Info("Role updated", "user_id", user.ID, "role", role)
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, role)
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or email")
	cmd.Flags().BoolVar(&revoke, "revoke", false, "revoke the admin role")
	return cmd
}
