package ports

import (
	"context"

	"github.com/localtalent/console/internal/core/domain"
)

// SessionState is the lifecycle state of the client session.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateRestoring       SessionState = "restoring"
	StateAuthenticated   SessionState = "authenticated"
)

// AuthService owns the authenticated identity of one client.
type AuthService interface {
	Init(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string, role domain.Role) error
	Logout(ctx context.Context)
	// Expire drops the in-memory identity after the adapter gave up on
	// refreshing the session. Storage has already been cleared by then.
	Expire()
	Current() (*domain.Session, bool)
	State() SessionState
}
