package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/localtalent/console/internal/booking"
	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/core/service"
	"github.com/localtalent/console/internal/pkg/validate"
	"github.com/localtalent/console/internal/table"
)

func (r *runner) servicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Browse and manage service listings",
		Long: `Service listing commands.

Examples:
  localtalent services browse --q logo --category design
  localtalent services show 12
  localtalent services list --search logo --size 20
  localtalent services create --title "Logo design" --description "A crisp vector logo" \
      --rate 49.99 --availability Weekdays --category design --image ./logo.png
  localtalent services approve 12`,
	}

	cmd.AddCommand(
		r.listCmd(table.EndpointService, "List your services, or all services as admin"),
		r.browseCmd(),
		r.showCmd(),
		r.listingFormCmd("create", "Create a service listing"),
		r.listingFormCmd("update", "Update a service listing"),
		r.actionCmd(table.EndpointService, table.ActionDelete, "Delete a service listing"),
		r.actionCmd(table.EndpointService, table.ActionApprove, "Approve a listing (admin)"),
		r.actionCmd(table.EndpointService, table.ActionReject, "Reject a listing (admin)"),
	)
	return cmd
}

func (r *runner) browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the public catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			term, _ := cmd.Flags().GetString("q")
			category, _ := cmd.Flags().GetString("category")
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")

			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				res, ok := app.Listings.Browse(ctx, ports.BrowseFilter{Term: term, Category: category})
				if !ok {
					return domain.ErrRequestFailed
				}
				if r.jsonOut {
					return r.printJSON(res)
				}

				if len(res.Categories) > 0 {
					r.printf("Categories: %s\n", strings.Join(res.Categories, ", "))
				}
				ctrl := table.NewController("Services", table.EndpointService, domain.RoleUser, nil, r.log)
				ctrl.Load(service.ListingRows(res.Listings))
				if err := ctrl.Configure("", size, page); err != nil {
					return err
				}
				return r.renderView(ctrl.View())
			})
		},
	}
	cmd.Flags().String("q", "", "title search term")
	cmd.Flags().String("category", service.CategoryAll, "category, or all")
	cmd.Flags().Int("page", 1, "page to show, from 1")
	cmd.Flags().Int("size", table.DefaultPageSize, "rows per page: 5, 10, 20 or 50")
	return cmd
}

func (r *runner) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a service and its booking options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, _ := cmd.Flags().GetInt("duration")

			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				l, ok := app.Listings.Get(ctx, domain.ID(args[0]))
				if !ok || l == nil {
					return fmt.Errorf("service %s: %w", args[0], domain.ErrNotFound)
				}
				summary := booking.Summarize(l, duration)
				if r.jsonOut {
					return r.printJSON(map[string]any{"service": l, "summary": summary})
				}

				r.printf("ID:            %s\n", l.ID)
				r.printf("Title:         %s\n", l.Title)
				if owner := l.OwnerName(); owner != "" {
					r.printf("Freelancer:    %s\n", owner)
				}
				r.printf("Category:      %s\n", l.Category)
				r.printf("Rate:          $%s/hr\n", l.Rate.StringFixed(2))
				r.printf("Availability:  %s\n", l.Availability)
				r.printf("Status:        %s\n", l.Approved)
				r.printf("Description:   %s\n", l.Description)
				r.printf("Time slots:    %s\n", strings.Join(domain.TimeSlots, " "))
				if summary.HasTotal {
					r.printf("Total:         $%s for %s\n", summary.Total.StringFixed(2), summary.Duration)
				}
				return nil
			})
		},
	}
	cmd.Flags().Int("duration", 0, "hours to quote: 1, 2, 3, 4, 6 or 8")
	return cmd
}

// listingFormCmd builds create (no argument) or update <id>.
func (r *runner) listingFormCmd(verb, short string) *cobra.Command {
	use, positional := verb, cobra.NoArgs
	if verb == "update" {
		use, positional = verb+" <id>", cobra.ExactArgs(1)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := listingInput(cmd)
			if err != nil {
				return err
			}

			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				if _, err := session(app); err != nil {
					return err
				}
				var l *domain.Listing
				if verb == "update" {
					l, err = app.Listings.Update(ctx, domain.ID(args[0]), in)
				} else {
					l, err = app.Listings.Create(ctx, in)
				}
				if err != nil {
					return err
				}
				if r.jsonOut {
					return r.printJSON(l)
				}
				if l != nil && !l.ID.IsZero() {
					r.printf("Saved service %s\n", l.ID)
				}
				return nil
			})
		},
	}
	cmd.Flags().String("title", "", "title, 3 to 100 characters")
	cmd.Flags().String("description", "", "description, 10 to 500 characters")
	cmd.Flags().String("rate", "", "hourly rate, 0.01 to 10000")
	cmd.Flags().String("availability", "", "availability, at least 5 characters")
	cmd.Flags().String("category", "", "category")
	cmd.Flags().String("image-url", "", "existing image URL")
	cmd.Flags().String("image", "", "image file to upload first")
	return cmd
}

func listingInput(cmd *cobra.Command) (ports.ListingInput, error) {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	rawRate, _ := cmd.Flags().GetString("rate")
	availability, _ := cmd.Flags().GetString("availability")
	category, _ := cmd.Flags().GetString("category")
	imageURL, _ := cmd.Flags().GetString("image-url")
	imagePath, _ := cmd.Flags().GetString("image")

	rate, err := decimal.NewFromString(rawRate)
	if err != nil {
		return ports.ListingInput{}, validate.Fail("rate", "rate must be a number")
	}
	in := ports.ListingInput{
		Title:        title,
		Description:  description,
		Rate:         rate,
		Availability: availability,
		Category:     category,
		ImageURL:     imageURL,
	}
	if imagePath != "" {
		content, err := os.ReadFile(imagePath)
		if err != nil {
			return ports.ListingInput{}, fmt.Errorf("read image: %w", err)
		}
		in.Image = &ports.Upload{Filename: filepath.Base(imagePath), Content: content}
	}
	return in, nil
}
