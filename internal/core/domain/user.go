package domain

import "time"

// Role is the marketplace role reflected by the remote API. The client only
// uses it to decide which actions to render.
type Role string

const (
	RoleUser       Role = "USER"
	RoleFreelancer Role = "FREELANCER"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleFreelancer, RoleAdmin:
		return true
	}
	return false
}

// User models the profile snapshot returned by the auth endpoints.
type User struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Session is the authenticated identity held by the client. Token and user
// are persisted and cleared together.
type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// Valid reports whether the session carries both a token and a profile.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && !s.User.ID.IsZero()
}
