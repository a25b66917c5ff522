package handler

import (
	"context"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
)

type stubAuthService struct {
	session    *domain.Session
	loginFn    func(ctx context.Context, email, password string) error
	registerFn func(ctx context.Context, name, email, password string, role domain.Role) error
	loggedOut  bool
}

func (s *stubAuthService) Init(context.Context) {}

func (s *stubAuthService) Login(ctx context.Context, email, password string) error {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string, role domain.Role) error {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubAuthService) Logout(context.Context) {
	s.loggedOut = true
	s.session = nil
}

func (s *stubAuthService) Expire() { s.session = nil }

func (s *stubAuthService) Current() (*domain.Session, bool) {
	return s.session, s.session != nil
}

func (s *stubAuthService) State() ports.SessionState {
	if s.session == nil {
		return ports.StateUnauthenticated
	}
	return ports.StateAuthenticated
}

type stubListings struct {
	items    []domain.Listing
	ok       bool
	created  *ports.ListingInput
	approved map[domain.ID]domain.ApprovalStatus
}

func (s *stubListings) List(context.Context) ([]domain.Listing, bool) { return s.items, s.ok }

func (s *stubListings) Get(_ context.Context, id domain.ID) (*domain.Listing, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], true
		}
	}
	return nil, false
}

func (s *stubListings) Browse(_ context.Context, f ports.BrowseFilter) (*ports.BrowseResult, bool) {
	return &ports.BrowseResult{Listings: s.items, Total: len(s.items)}, s.ok
}

func (s *stubListings) Create(_ context.Context, in ports.ListingInput) (*domain.Listing, error) {
	s.created = &in
	return &domain.Listing{ID: "99", Title: in.Title, Rate: in.Rate}, nil
}

func (s *stubListings) Update(_ context.Context, id domain.ID, in ports.ListingInput) (*domain.Listing, error) {
	return &domain.Listing{ID: id, Title: in.Title}, nil
}

func (s *stubListings) Delete(context.Context, domain.ID) bool { return s.ok }

func (s *stubListings) SetApproval(_ context.Context, id domain.ID, status domain.ApprovalStatus) bool {
	if s.approved == nil {
		s.approved = make(map[domain.ID]domain.ApprovalStatus)
	}
	s.approved[id] = status
	return s.ok
}

type stubBookings struct {
	items   []domain.Booking
	created *ports.BookingInput
	role    domain.Role
}

func (s *stubBookings) ListFor(_ context.Context, role domain.Role) ([]domain.Booking, bool) {
	s.role = role
	return s.items, true
}

func (s *stubBookings) Create(_ context.Context, in ports.BookingInput) bool {
	s.created = &in
	return true
}

func (s *stubBookings) SetStatus(context.Context, domain.ID, domain.BookingStatus) bool { return true }

type stubUsers struct {
	items []domain.User
}

func (s *stubUsers) List(context.Context) ([]domain.User, bool) { return s.items, true }

func (s *stubUsers) Delete(context.Context, domain.ID) bool { return true }
