package service

import (
	"context"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/table"
)

// bookingDateLayout matches the short date shown in booking lists.
const bookingDateLayout = "1/2/2006"

func idValue(id domain.ID) table.Value {
	if id.IsZero() {
		return table.Null()
	}
	b, err := id.MarshalJSON()
	if err == nil && len(b) > 0 && b[0] != '"' {
		return table.Number(string(b))
	}
	return table.String(id.String())
}

func textValue(s string) table.Value {
	if s == "" {
		return table.Null()
	}
	return table.String(s)
}

// ListingRows projects listings onto the services table.
func ListingRows(listings []domain.Listing) []*table.Record {
	out := make([]*table.Record, 0, len(listings))
	for _, l := range listings {
		out = append(out, table.NewRecord().
			Set("id", idValue(l.ID)).
			Set("title", table.String(l.Title)).
			Set("description", table.String(l.Description)).
			Set("rate", table.Number(l.Rate.String())).
			Set("availability", table.String(l.Availability)).
			Set("status", textValue(string(l.Approved))))
	}
	return out
}

// BookingRows projects bookings onto the bookings table.
func BookingRows(bookings []domain.Booking) []*table.Record {
	out := make([]*table.Record, 0, len(bookings))
	for _, b := range bookings {
		date := table.Null()
		if !b.Date.IsZero() {
			date = table.String(b.Date.Format(bookingDateLayout))
		}
		out = append(out, table.NewRecord().
			Set("id", idValue(b.ID)).
			Set("Service", table.String(b.ServiceTitle())).
			Set("status", textValue(string(b.Status))).
			Set("date", date).
			Set("time", textValue(b.Time)))
	}
	return out
}

// UserRows projects accounts onto the users table.
func UserRows(users []domain.User) []*table.Record {
	out := make([]*table.Record, 0, len(users))
	for _, u := range users {
		out = append(out, table.NewRecord().
			Set("id", idValue(u.ID)).
			Set("name", table.String(u.Name)).
			Set("email", table.String(u.Email)).
			Set("role", table.String(string(u.Role))))
	}
	return out
}

var tableTitles = map[table.Endpoint]string{
	table.EndpointService: "Services List",
	table.EndpointBooking: "Booking List",
	table.EndpointUser:    "Users List",
}

// TableTitle is the heading of the endpoint's table.
func TableTitle(endpoint table.Endpoint) string {
	return tableTitles[endpoint]
}

// Tables loads the row sets of the resource tables.
type Tables struct {
	Listings ports.ListingService
	Bookings ports.BookingService
	Users    ports.UserService
}

// Fetch rebuilds the rows of endpoint from the remote API. Bookings are
// listed for role.
func (t Tables) Fetch(ctx context.Context, endpoint table.Endpoint, role domain.Role) ([]*table.Record, error) {
	switch endpoint {
	case table.EndpointService:
		if items, ok := t.Listings.List(ctx); ok {
			return ListingRows(items), nil
		}
	case table.EndpointBooking:
		if items, ok := t.Bookings.ListFor(ctx, role); ok {
			return BookingRows(items), nil
		}
	case table.EndpointUser:
		if items, ok := t.Users.List(ctx); ok {
			return UserRows(items), nil
		}
	default:
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrRequestFailed
}

// Updater routes row actions of the tables to the same services.
func (t Tables) Updater() table.ServiceUpdater {
	return table.ServiceUpdater{Listings: t.Listings, Bookings: t.Bookings, Users: t.Users}
}
