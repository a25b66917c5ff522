package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/pkg/token"
)

func (r *runner) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the marketplace",
		Long: `Sign in with email and password. The session is stored and restored
on the next run until it can no longer be refreshed.

Examples:
  localtalent login --email ana@example.com --password secret1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				if err := app.Auth.Login(ctx, email, password); err != nil {
					return err
				}
				s, err := session(app)
				if err != nil {
					return err
				}
				if r.jsonOut {
					return r.printJSON(s.User)
				}
				r.printf("Signed in as %s (%s)\n", s.User.Name, s.User.Role)
				return nil
			})
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	return cmd
}

func (r *runner) registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a marketplace account",
		Long: `Create a customer or freelancer account. You stay signed out and sign
in afterwards with "localtalent login".

Examples:
  localtalent register --name Ana --email ana@example.com --password secret1 --role FREELANCER`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				if err := app.Auth.Register(ctx, name, email, password, domain.Role(role)); err != nil {
					return err
				}
				r.printf("Account created for %s. Sign in with: localtalent login\n", email)
				return nil
			})
		},
	}
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password, at least 6 characters")
	cmd.Flags().String("role", string(domain.RoleUser), "USER or FREELANCER")
	return cmd
}

func (r *runner) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				app.Auth.Logout(ctx)
				return nil
			})
		},
	}
}

type whoami struct {
	User      domain.User `json:"user"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
	Expired   bool        `json:"expired"`
}

func (r *runner) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(_ context.Context, app *App) error {
				s, err := session(app)
				if err != nil {
					return err
				}

				out := whoami{User: s.User}
				claims, inspectErr := token.Inspect(s.AccessToken)
				if inspectErr == nil && !claims.ExpiresAt.IsZero() {
					exp := claims.ExpiresAt
					out.ExpiresAt = &exp
					out.Expired = claims.Expired(r.opts.Now())
				}
				if r.jsonOut {
					return r.printJSON(out)
				}

				r.printf("Name:   %s\n", s.User.Name)
				r.printf("Email:  %s\n", s.User.Email)
				r.printf("Role:   %s\n", s.User.Role)
				switch {
				case out.ExpiresAt == nil:
					r.printf("Token:  no expiry information\n")
				case out.Expired:
					r.printf("Token:  expired, refreshed on next request\n")
				default:
					r.printf("Token:  expires in %s\n", claims.Remaining(r.opts.Now()).Round(time.Second))
				}
				return nil
			})
		},
	}
}
