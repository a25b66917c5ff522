package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/localtalent/console/internal/booking"
	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/pkg/validate"
	"github.com/localtalent/console/internal/table"
)

func (r *runner) bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Request and manage bookings",
		Long: `Booking commands. Customers see their own bookings, freelancers the
bookings of their services and admins every booking.

Examples:
  localtalent bookings list
  localtalent bookings quote 12 --duration 3
  localtalent bookings create 12 --date 2026-03-12 --time 10:00 --duration 2 --notes "bring samples"
  localtalent bookings accept 40`,
	}

	cmd.AddCommand(
		r.listCmd(table.EndpointBooking, "List bookings for your role"),
		r.quoteCmd(),
		r.bookCmd(),
		r.actionCmd(table.EndpointBooking, table.ActionAccept, "Accept a booking request (freelancer)"),
		r.actionCmd(table.EndpointBooking, table.ActionDecline, "Decline a booking request (freelancer)"),
	)
	return cmd
}

func (r *runner) quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote <service-id>",
		Short: "Price a booking of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, _ := cmd.Flags().GetInt("duration")
			if !domain.IsDuration(duration) {
				return validate.Fail("duration", "duration must be one of 1, 2, 3, 4, 6 or 8 hours")
			}

			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				l, ok := app.Listings.Get(ctx, domain.ID(args[0]))
				if !ok || l == nil {
					return fmt.Errorf("service %s: %w", args[0], domain.ErrNotFound)
				}
				s := booking.Summarize(l, duration)
				if r.jsonOut {
					return r.printJSON(s)
				}
				r.printf("Service:     %s\n", s.Service)
				if s.Freelancer != "" {
					r.printf("Freelancer:  %s\n", s.Freelancer)
				}
				r.printf("Rate:        $%s/hr\n", s.Rate.StringFixed(2))
				r.printf("Duration:    %s\n", s.Duration)
				r.printf("Total:       $%s\n", s.Total.StringFixed(2))
				return nil
			})
		},
	}
	cmd.Flags().Int("duration", 1, "hours: 1, 2, 3, 4, 6 or 8")
	return cmd
}

func (r *runner) bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <service-id>",
		Short: "Request a booking of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawDate, _ := cmd.Flags().GetString("date")
			slot, _ := cmd.Flags().GetString("time")
			duration, _ := cmd.Flags().GetInt("duration")
			notes, _ := cmd.Flags().GetString("notes")

			now := r.opts.Now()
			form := booking.Form{Time: slot, Duration: duration, Notes: notes}
			if rawDate != "" {
				date, err := time.ParseInLocation(time.DateOnly, rawDate, now.Location())
				if err != nil {
					return validate.Fail("date", "date must be YYYY-MM-DD")
				}
				form.Date = date
			}

			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				if _, err := session(app); err != nil {
					return err
				}
				if err := booking.Submit(ctx, app.Bookings, domain.ID(args[0]), form, now); err != nil {
					return err
				}
				r.printf("Booking requested for %s at %s (%s)\n", form.Date.Format(time.DateOnly), form.Time, booking.DurationLabel(form.Duration))
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "day, YYYY-MM-DD, today or later")
	cmd.Flags().String("time", "", "start time, 09:00 to 18:00 on the hour")
	cmd.Flags().Int("duration", 0, "hours: 1, 2, 3, 4, 6 or 8")
	cmd.Flags().String("notes", "", "notes for the freelancer, up to 1000 characters")
	return cmd
}
