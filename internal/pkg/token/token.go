// Package token reads the claims of an access token without verifying it.
// The client never holds the signing key; claims are display hints only and
// the remote API stays the authority.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token fields the client shows.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Inspect parses raw and returns its claims. The signature is not checked.
func Inspect(raw string) (Claims, error) {
	var c accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return Claims{}, fmt.Errorf("inspect token: %w", err)
	}
	out := Claims{Subject: c.Subject, Role: c.Role}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

// Expired reports whether the claims carry an expiry at or before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Remaining is the time left before expiry, zero when unknown or past.
func (c Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt.IsZero() || !now.Before(c.ExpiresAt) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
