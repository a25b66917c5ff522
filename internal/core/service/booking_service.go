package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/core/request"
)

const (
	pathBooking           = "/booking"
	pathBookingFreelancer = "/booking/freelancer"
	pathBookingUser       = "/booking/user"
	pathBookingStatus     = "/booking/status"
)

type BookingService struct {
	helper *request.Helper
	log    zerolog.Logger
}

var _ ports.BookingService = (*BookingService)(nil)

func NewBookingService(helper *request.Helper, log zerolog.Logger) *BookingService {
	return &BookingService{helper: helper, log: log}
}

// bookingsPath picks the listing endpoint for role: freelancers see bookings
// of their services, customers their own, admins everything.
func bookingsPath(role domain.Role) string {
	switch role {
	case domain.RoleFreelancer:
		return pathBookingFreelancer
	case domain.RoleUser:
		return pathBookingUser
	default:
		return pathBooking
	}
}

func (s *BookingService) ListFor(ctx context.Context, role domain.Role) ([]domain.Booking, bool) {
	return request.Get[[]domain.Booking](ctx, s.helper, bookingsPath(role), request.Silent()).Get()
}

type bookingPayload struct {
	ServiceID domain.ID `json:"serviceId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Duration  int       `json:"duration"`
	Notes     string    `json:"notes"`
}

// Create posts a booking. The date is sent as an RFC 3339 timestamp.
func (s *BookingService) Create(ctx context.Context, in ports.BookingInput) bool {
	body := bookingPayload{
		ServiceID: in.ServiceID,
		Date:      in.Date.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Time:      in.Time,
		Duration:  in.Duration,
		Notes:     in.Notes,
	}
	ok := request.Post[json.RawMessage](ctx, s.helper, pathBooking, body).OK()
	if ok {
		s.log.Info().Str("service_id", in.ServiceID.String()).Str("time", in.Time).Int("duration", in.Duration).Msg("booking created")
	}
	return ok
}

func (s *BookingService) SetStatus(ctx context.Context, id domain.ID, status domain.BookingStatus) bool {
	body := map[string]domain.BookingStatus{"status": status}
	return request.Put[json.RawMessage](ctx, s.helper, pathBookingStatus+"/"+id.String(), body).OK()
}
