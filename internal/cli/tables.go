package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/service"
	"github.com/localtalent/console/internal/table"
)

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "filter rows containing this text")
	cmd.Flags().Int("page", 1, "page to show, from 1")
	cmd.Flags().Int("size", table.DefaultPageSize, "rows per page: 5, 10, 20 or 50")
}

func tables(app *App) service.Tables {
	return service.Tables{Listings: app.Listings, Bookings: app.Bookings, Users: app.Users}
}

// loadTable fetches endpoint for the signed-in role into a fresh controller.
func (r *runner) loadTable(ctx context.Context, app *App, endpoint table.Endpoint) (*table.Controller, error) {
	s, err := session(app)
	if err != nil {
		return nil, err
	}
	if endpoint == table.EndpointUser && s.User.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	t := tables(app)
	records, err := t.Fetch(ctx, endpoint, s.User.Role)
	if err != nil {
		return nil, err
	}
	ctrl := table.NewController(service.TableTitle(endpoint), endpoint, s.User.Role, t.Updater(), r.log)
	ctrl.Load(records)
	return ctrl, nil
}

func (r *runner) renderView(v table.View) error {
	if r.jsonOut {
		return r.printJSON(v)
	}
	table.Render(r.opts.Out, v)
	return nil
}

// listCmd shows one page of an endpoint's table.
func (r *runner) listCmd(endpoint table.Endpoint, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")

			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				ctrl, err := r.loadTable(ctx, app, endpoint)
				if err != nil {
					return err
				}
				if err := ctrl.Configure(search, size, page); err != nil {
					return err
				}
				return r.renderView(ctrl.View())
			})
		},
	}
	addTableFlags(cmd)
	return cmd
}

// actionCmd runs a row action on the endpoint's table.
func (r *runner) actionCmd(endpoint table.Endpoint, action table.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				ctrl, err := r.loadTable(ctx, app, endpoint)
				if err != nil {
					return err
				}
				if err := ctrl.Run(ctx, args[0], action); err != nil {
					return err
				}
				if r.jsonOut {
					return r.printJSON(ctrl.View())
				}
				return nil
			})
		},
	}
}
