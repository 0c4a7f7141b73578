package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the admin account",
	}

	cmd.AddCommand(newAdminResetPasswordCmd())
	cmd.AddCommand(newAdminSetPasswordCmd())

	return cmd
}

func newAdminResetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Reset the admin password to ADMIN_PASSWORD",
		RunE: withApp(func(cmd *cobra.Command, a *app) error {
			if err := a.auth.SetPassword(cmd.Context(), a.cfg.AdminEmail, a.cfg.AdminPassword); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password reset for %s\n", a.cfg.AdminEmail)
			return nil
		}),
	}
}

func newAdminSetPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:     "set-password",
		Short:   "Set the password of an admin interactively",
		Example: `  portfolioctl admin set-password --email admin@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, "New password: ", true)
			if err != nil {
				return err
			}
			return withApp(func(cmd *cobra.Command, a *app) error {
				if err := a.auth.SetPassword(cmd.Context(), email, password); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", email)
				return nil
			})(cmd, args)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
