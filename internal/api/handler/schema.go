package handler

import (
	"encoding/json"

	"github.com/localtalent/console/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type sessionResponse struct {
	User      domain.User `json:"user"`
	Role      domain.Role `json:"role"`
	ExpiresAt string      `json:"expires_at,omitempty"`
}

type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type browseQuery struct {
	Term     string `query:"q"`
	Category string `query:"category"`
}

type quoteQuery struct {
	Duration int `query:"duration" validate:"required,duration"`
}

// bookingRequest is the booking form. Date is a calendar day, YYYY-MM-DD.
type bookingRequest struct {
	Date     string `json:"date"     validate:"required,datetime=2006-01-02"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
	Notes    string `json:"notes"`
}

// listingRequest is the service form, as JSON or multipart fields. The
// multipart variant may carry an "image" file.
type listingRequest struct {
	Title        string      `json:"title"        form:"title"`
	Description  string      `json:"description"  form:"description"`
	Rate         json.Number `json:"rate"         form:"rate"`
	Availability string      `json:"availability" form:"availability"`
	Category     string      `json:"category"     form:"category"`
	ImageURL     string      `json:"imageUrl"     form:"imageUrl"`
}

type tableQuery struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Size   int    `query:"size"`
}
