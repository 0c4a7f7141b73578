package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"portfolio/internal/client"
	"portfolio/internal/model"
)

type remoteOptions struct {
	url   string
	token string
}

func (o *remoteOptions) client() (*client.Client, error) {
	if o.token == "" {
		return nil, fmt.Errorf("no token: pass --token, set PORTFOLIO_TOKEN or run 'portfolioctl remote login'")
	}
	return client.New(o.url, client.NewSession(o.token), client.WithTimeout(15*time.Second)), nil
}

func newRemoteCmd() *cobra.Command {
	opts := &remoteOptions{}

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Moderate content on a running server",
		Long: `Talks to the admin API of a running server. Authenticate once with
'portfolioctl remote login' and pass the printed token with --token or PORTFOLIO_TOKEN.`,
	}

	url := os.Getenv("PORTFOLIO_URL")
	if url == "" {
		url = "http://localhost:8080"
	}
	cmd.PersistentFlags().StringVar(&opts.url, "url", url, "Server base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("PORTFOLIO_TOKEN"), "Admin session token")

	cmd.AddCommand(newRemoteLoginCmd(opts))
	cmd.AddCommand(newRemoteWhoamiCmd(opts))
	cmd.AddCommand(newRemoteTestimonialsCmd(opts))
	cmd.AddCommand(newRemoteModerateCmd(opts, "approve", model.TestimonialApproved))
	cmd.AddCommand(newRemoteModerateCmd(opts, "reject", model.TestimonialRejected))
	cmd.AddCommand(newRemoteProjectsCmd(opts))
	cmd.AddCommand(newRemotePublishCmd(opts, "publish", true))
	cmd.AddCommand(newRemotePublishCmd(opts, "unpublish", false))

	return cmd
}

func newRemoteLoginCmd(opts *remoteOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Sign in and print a session token",
		Example: `  export PORTFOLIO_TOKEN=$(portfolioctl remote login --email admin@example.com)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readPassword(cmd, "Password: ", false); err != nil {
					return err
				}
			}
			c := client.New(opts.url, nil, client.WithTimeout(15*time.Second))
			admin, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Signed in as", admin.Email)
			fmt.Fprintln(cmd.OutOrStdout(), c.Session().Token())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRemoteWhoamiCmd(opts *remoteOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the admin behind the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			admin, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", admin.Name, admin.Email, admin.Role)
			return nil
		},
	}
}

func newRemoteTestimonialsCmd(opts *remoteOptions) *cobra.Command {
	var (
		status      string
		page, limit int
	)

	cmd := &cobra.Command{
		Use:     "testimonials",
		Aliases: []string{"ls"},
		Short:   "List testimonials",
		Example: `  portfolioctl remote testimonials --status pending`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			res, err := c.ListTestimonials(cmd.Context(), model.TestimonialStatus(strings.ToUpper(status)), page, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tRATING\tNAME\tCOMPANY\tSUBMITTED")
			for _, t := range res.Testimonials {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					t.ID, t.Status, t.Rating, t.Name, t.Company, t.SubmissionDate.Format("2006-01-02"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			p := res.Pagination
			fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d total\n", p.Page, p.Pages, p.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only PENDING, APPROVED or REJECTED")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "Page size")

	return cmd
}

func newRemoteModerateCmd(opts *remoteOptions, use string, status model.TestimonialStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: fmt.Sprintf("Mark a testimonial %s", strings.ToLower(string(status))),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid testimonial id %q", args[0])
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			t, err := c.ModerateTestimonial(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.ID, t.Status)
			return nil
		},
	}
}

func newRemoteProjectsCmd(opts *remoteOptions) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects, published or not",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			res, err := c.ListProjects(cmd.Context(), page, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPUBLISHED\tFEATURED\tCATEGORY\tTITLE")
			for _, p := range res.Projects {
				fmt.Fprintf(w, "%s\t%t\t%t\t%s\t%s\n", p.ID, p.Published, p.Featured, p.Category, p.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			pg := res.Pagination
			fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d total\n", pg.Page, pg.Pages, pg.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "Page size")

	return cmd
}

func newRemotePublishCmd(opts *remoteOptions, use string, published bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: fmt.Sprintf("Set published=%t on a project", published),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			p, err := c.SetProjectPublished(cmd.Context(), id, published)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s published=%t\n", p.ID, p.Published)
			return nil
		},
	}
}
