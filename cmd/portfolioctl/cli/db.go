package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio/internal/db"
)

func newMigrateCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Example: `  portfolioctl migrate
  portfolioctl migrate --reset  # drops every table first`,
		RunE: withApp(func(_ *cobra.Command, a *app) error {
			if reset {
				a.log.Warn("dropping all tables")
				db.Reset(a.db, a.log)
			}
			if err := db.Migrate(a.db); err != nil {
				return fmt.Errorf("auto-migrate: %w", err)
			}
			a.log.Info("schema up to date", zap.String("driver", a.cfg.DBDriver))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Drop all tables before migrating")

	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and insert sample content",
		Long: `Migrates the schema, creates the admin account from ADMIN_EMAIL, ADMIN_PASSWORD
and ADMIN_NAME when it does not exist, then inserts the sample testimonials and
projects that are not present yet. Running it twice changes nothing.`,
		RunE: withApp(func(cmd *cobra.Command, a *app) error {
			ctx := cmd.Context()

			if err := db.Migrate(a.db); err != nil {
				return fmt.Errorf("auto-migrate: %w", err)
			}

			created, err := a.auth.EnsureAdmin(ctx, a.cfg.AdminEmail, a.cfg.AdminPassword, a.cfg.AdminName)
			if err != nil {
				return err
			}
			if created {
				a.log.Info("created admin", zap.String("email", a.cfg.AdminEmail))
			} else {
				a.log.Info("admin already exists", zap.String("email", a.cfg.AdminEmail))
			}

			res, err := db.Seed(ctx, a.repos.projects, a.repos.testimonials, a.log)
			if err != nil {
				return err
			}
			a.log.Info("seed complete",
				zap.Int("projects", res.Projects),
				zap.Int("testimonials", res.Testimonials),
			)
			return nil
		}),
	}
}
