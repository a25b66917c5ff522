package ports

import (
	"context"

	"github.com/localtalent/console/internal/core/domain"
)

// SessionStore persists the access token and the user-profile snapshot.
// Implementations write and clear both entries together. Load returns
// domain.ErrNoSession when either entry is missing, so a token without a
// matching profile never authenticates a request.
type SessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

// Pinger is implemented by stores backed by a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}
