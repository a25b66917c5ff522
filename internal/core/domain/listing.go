package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus is the lifecycle flag an admin sets on a listing.
type ApprovalStatus string

const (
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Listing is a freelancer's service offering. The remote payload carries the
// approval status under "approved".
type Listing struct {
	ID           ID              `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Rate         decimal.Decimal `json:"rate"`
	Availability string          `json:"availability"`
	Category     string          `json:"category"`
	ImageURL     string          `json:"imageUrl"`
	Approved     ApprovalStatus  `json:"approved"`
	UserID       ID              `json:"userId,omitempty"`
	User         *User           `json:"user,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitzero"`
	UpdatedAt    time.Time       `json:"updatedAt,omitzero"`
}

// OwnerName returns the freelancer name, or an empty string when the payload
// did not embed the owner.
func (l *Listing) OwnerName() string {
	if l.User == nil {
		return ""
	}
	return l.User.Name
}
