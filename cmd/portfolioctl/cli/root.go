package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gorm.io/gorm"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/logger"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

// Execute creates the root command tree and runs it.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Operate the portfolio backend",
		Long: `portfolioctl manages the portfolio backend.

The database commands read the same environment (and .env file) as the server.
The remote commands talk to a running server through its admin API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newRemoteCmd())

	return cmd
}

// app is the database-backed part of the server, opened for one command.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	auth  service.AuthService
	repos repos
}

type repos struct {
	projects     repository.ProjectRepository
	testimonials repository.TestimonialRepository
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	zl, err := logger.New(cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	r := repos{
		projects:     repository.NewProjectRepository(gormDB),
		testimonials: repository.NewTestimonialRepository(gormDB),
	}
	// Token revocation needs redis and is irrelevant to these commands.
	authService := service.NewAuthService(repository.NewAdminRepository(gormDB), auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL), nil)

	return &app{cfg: cfg, log: zl, db: gormDB, auth: authService, repos: r}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func withApp(run func(cmd *cobra.Command, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()
		return run(cmd, a)
	}
}

// readPassword prompts on stdout and reads a password from the terminal
// without echo. With confirm set it asks twice and requires both to match.
func readPassword(cmd *cobra.Command, prompt string, confirm bool) (string, error) {
	fd := int(os.Stdin.Fd())
	out := cmd.OutOrStdout()

	fmt.Fprint(out, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if !confirm {
		return string(pw), nil
	}

	fmt.Fprint(out, "Confirm password: ")
	again, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	if string(pw) != string(again) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pw), nil
}
