package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/localtalent/console/internal/core/domain"
)

// ListingInput carries the service form fields.
type ListingInput struct {
	Title        string
	Description  string
	Rate         decimal.Decimal
	Availability string
	Category     string
	ImageURL     string
	Image        *Upload // optional; uploaded before the listing is saved
}

// Upload is a file attached to a multipart request.
type Upload struct {
	Filename string
	Content  []byte
}

// BrowseFilter narrows the public catalogue.
type BrowseFilter struct {
	Term     string // case-insensitive match on title
	Category string // "" or "all" means every category
}

// BrowseResult is the public catalogue after filtering.
type BrowseResult struct {
	Listings   []domain.Listing
	Categories []string
	Total      int
}

// ListingService manages service listings.
type ListingService interface {
	List(ctx context.Context) ([]domain.Listing, bool)
	Get(ctx context.Context, id domain.ID) (*domain.Listing, bool)
	Browse(ctx context.Context, filter BrowseFilter) (*BrowseResult, bool)
	Create(ctx context.Context, in ListingInput) (*domain.Listing, error)
	Update(ctx context.Context, id domain.ID, in ListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, id domain.ID) bool
	SetApproval(ctx context.Context, id domain.ID, status domain.ApprovalStatus) bool
}

// BookingInput is the payload posted by the booking form.
type BookingInput struct {
	ServiceID domain.ID
	Date      time.Time
	Time      string
	Duration  int
	Notes     string
}

// BookingService manages bookings.
type BookingService interface {
	ListFor(ctx context.Context, role domain.Role) ([]domain.Booking, bool)
	Create(ctx context.Context, in BookingInput) bool
	SetStatus(ctx context.Context, id domain.ID, status domain.BookingStatus) bool
}

// UserService manages user accounts (admin only on the remote side).
type UserService interface {
	List(ctx context.Context) ([]domain.User, bool)
	Delete(ctx context.Context, id domain.ID) bool
}
