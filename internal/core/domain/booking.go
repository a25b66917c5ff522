package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a user's request for a slot of a freelancer's service.
type Booking struct {
	ID        ID            `json:"id"`
	ServiceID ID            `json:"serviceId"`
	Service   *Listing      `json:"service,omitempty"`
	Date      time.Time     `json:"date"`
	Time      string        `json:"time"`
	Duration  int           `json:"duration"`
	Notes     string        `json:"notes,omitempty"`
	Status    BookingStatus `json:"status"`
}

// ServiceTitle returns the embedded service title or "N/A".
func (b *Booking) ServiceTitle() string {
	if b.Service == nil || b.Service.Title == "" {
		return "N/A"
	}
	return b.Service.Title
}

// TimeSlots are the bookable start times, hourly from 09:00 to 18:00.
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// Durations are the bookable lengths in hours.
var Durations = []int{1, 2, 3, 4, 6, 8}

// IsTimeSlot reports whether s is one of TimeSlots.
func IsTimeSlot(s string) bool {
	for _, slot := range TimeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// IsDuration reports whether hours is one of Durations.
func IsDuration(hours int) bool {
	for _, d := range Durations {
		if d == hours {
			return true
		}
	}
	return false
}
