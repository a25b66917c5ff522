package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
)

var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

type stubBookings struct {
	ok    bool
	input *ports.BookingInput
}

func (s *stubBookings) ListFor(context.Context, domain.Role) ([]domain.Booking, bool) {
	return nil, true
}

func (s *stubBookings) Create(_ context.Context, in ports.BookingInput) bool {
	s.input = &in
	return s.ok
}

func (s *stubBookings) SetStatus(context.Context, domain.ID, domain.BookingStatus) bool {
	return true
}

func validForm() Form {
	return Form{Date: now.AddDate(0, 0, 1), Time: "10:00", Duration: 3}
}

func TestIsDateDisabled(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"yesterday", now.AddDate(0, 0, -1), true},
		{"earlier today", time.Date(2026, 10, 14, 0, 1, 0, 0, time.UTC), false},
		{"later today", time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC), false},
		{"tomorrow", now.AddDate(0, 0, 1), false},
	}
	for _, tc := range cases {
		if got := IsDateDisabled(tc.date, now); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestForm_Validate(t *testing.T) {
	if err := validForm().Validate(now); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	mutate := map[string]func(*Form){
		"missing date":   func(f *Form) { f.Date = time.Time{} },
		"past date":      func(f *Form) { f.Date = now.AddDate(0, 0, -2) },
		"missing time":   func(f *Form) { f.Time = "" },
		"off-grid time":  func(f *Form) { f.Time = "08:00" },
		"late time":      func(f *Form) { f.Time = "19:00" },
		"no duration":    func(f *Form) { f.Duration = 0 },
		"5 hour booking": func(f *Form) { f.Duration = 5 },
	}
	for name, m := range mutate {
		f := validForm()
		m(&f)
		if err := f.Validate(now); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestTotal(t *testing.T) {
	if _, ok := Total(decimal.NewFromInt(50), 0); ok {
		t.Fatalf("total must be hidden until a duration is chosen")
	}
	got, ok := Total(decimal.NewFromInt(50), 3)
	if !ok || !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("50 x 3: got %s", got)
	}
	got, _ = Total(decimal.RequireFromString("0.1"), 3)
	if got.String() != "0.3" {
		t.Fatalf("0.1 x 3 should be exact, got %s", got)
	}
}

func TestDurationLabel(t *testing.T) {
	if DurationLabel(1) != "1 hour" || DurationLabel(3) != "3 hours" {
		t.Fatalf("unexpected labels %q %q", DurationLabel(1), DurationLabel(3))
	}
	opts := DurationOptions()
	if len(opts) != 6 || opts[5].Hours != 8 || opts[5].Label != "8 hours" {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestSubmit(t *testing.T) {
	svc := &stubBookings{ok: true}
	f := validForm()
	f.Notes = "Back door"
	if err := Submit(context.Background(), svc, "7", f, now); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if svc.input == nil || svc.input.ServiceID != "7" || svc.input.Duration != 3 || svc.input.Notes != "Back door" {
		t.Fatalf("unexpected input %+v", svc.input)
	}

	svc = &stubBookings{ok: false}
	if err := Submit(context.Background(), svc, "7", validForm(), now); !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}

	svc = &stubBookings{ok: true}
	bad := validForm()
	bad.Time = "08:30"
	if err := Submit(context.Background(), svc, "7", bad, now); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if svc.input != nil {
		t.Fatalf("invalid forms must not be posted")
	}
}

func TestSummarize(t *testing.T) {
	listing := &domain.Listing{
		Title: "Logo Design",
		Rate:  decimal.NewFromInt(50),
		User:  &domain.User{Name: "Ana"},
	}
	s := Summarize(listing, 3)
	if s.Service != "Logo Design" || s.Freelancer != "Ana" || s.Duration != "3 hours" || !s.HasTotal || !s.Total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s := Summarize(listing, 0); s.HasTotal || s.Duration != "" {
		t.Fatalf("summary without duration must not show a total: %+v", s)
	}
}
