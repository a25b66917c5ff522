// Package booking implements the booking form shown on a service page:
// slot and duration choice, date rules, the price total and submission.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/pkg/validate"
)

// Form holds the booking form fields. Duration is in hours.
type Form struct {
	Date     time.Time `json:"date"     validate:"required"`
	Time     string    `json:"time"     validate:"required,timeslot"`
	Duration int       `json:"duration" validate:"required,duration"`
	Notes    string    `json:"notes"    validate:"max=1000"`
}

// midnight truncates t to the start of its day in t's location.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsDateDisabled reports whether date lies before today. Today itself is
// selectable.
func IsDateDisabled(date, now time.Time) bool {
	return midnight(date.In(now.Location())).Before(midnight(now))
}

// Validate checks the form against now. Field rules run first; the date
// rule is only checked once a date is set.
func (f Form) Validate(now time.Time) error {
	if err := validate.Struct(f); err != nil {
		return err
	}
	if IsDateDisabled(f.Date, now) {
		return validate.Fail("date", "date must not be in the past")
	}
	return nil
}

// Total is rate × duration. It reports false until a duration is chosen.
func Total(rate decimal.Decimal, duration int) (decimal.Decimal, bool) {
	if duration <= 0 {
		return decimal.Zero, false
	}
	return rate.Mul(decimal.NewFromInt(int64(duration))), true
}

// DurationLabel is the option text for a duration, e.g. "1 hour", "3 hours".
func DurationLabel(hours int) string {
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

// Option is one selectable duration.
type Option struct {
	Hours int    `json:"hours"`
	Label string `json:"label"`
}

// DurationOptions lists the selectable durations with their labels.
func DurationOptions() []Option {
	out := make([]Option, 0, len(domain.Durations))
	for _, h := range domain.Durations {
		out = append(out, Option{Hours: h, Label: DurationLabel(h)})
	}
	return out
}

// Submit validates f and posts it for the listing. A nil error means the
// booking was accepted and the form can close. Validation errors are
// returned before any request; a rejected request returns
// domain.ErrRequestFailed and the notifier has already told the user.
func Submit(ctx context.Context, svc ports.BookingService, serviceID domain.ID, f Form, now time.Time) error {
	if serviceID.IsZero() {
		return validate.Fail("serviceId", "serviceId is required")
	}
	if err := f.Validate(now); err != nil {
		return err
	}
	ok := svc.Create(ctx, ports.BookingInput{
		ServiceID: serviceID,
		Date:      f.Date,
		Time:      f.Time,
		Duration:  f.Duration,
		Notes:     f.Notes,
	})
	if !ok {
		return fmt.Errorf("book service %s: %w", serviceID, domain.ErrRequestFailed)
	}
	return nil
}

// Summary is the price breakdown shown next to the form.
type Summary struct {
	Service    string          `json:"service"`
	Freelancer string          `json:"freelancer,omitempty"`
	Rate       decimal.Decimal `json:"rate"`
	Duration   string          `json:"duration,omitempty"`
	Total      decimal.Decimal `json:"total"`
	HasTotal   bool            `json:"has_total"`
}

// Summarize builds the summary of booking listing for duration hours.
func Summarize(listing *domain.Listing, duration int) Summary {
	s := Summary{
		Service:    listing.Title,
		Freelancer: listing.OwnerName(),
		Rate:       listing.Rate,
	}
	if total, ok := Total(listing.Rate, duration); ok {
		s.Duration = DurationLabel(duration)
		s.Total = total
		s.HasTotal = true
	}
	return s
}
