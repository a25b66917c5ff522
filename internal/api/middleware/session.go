package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/infrastructure/notify"
	"github.com/localtalent/console/internal/pkg/token"
)

// Context keys set by RequireSession.
const (
	KeySession = "session"
	KeyRole    = "role"
)

// RequireSession rejects requests while no identity is adopted and injects
// the session and its role into the context. An access token that already
// expired is let through; the adapter refreshes it on the first 401.
func RequireSession(auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := auth.Current()
			if !ok {
				return domain.ErrNoSession
			}

			if claims, err := token.Inspect(session.AccessToken); err == nil && claims.Expired(time.Now()) {
				log.Debug().
					Str("user_id", session.User.ID.String()).
					Time("expired_at", claims.ExpiresAt).
					Msg("access token expired, refresh pending")
			}

			c.Set(KeySession, session)
			c.Set(KeyRole, session.User.Role)
			return next(c)
		}
	}
}

// SessionExpiry watches for the adapter's forced navigation to the login
// route. When it happened during the request the in-memory identity is
// dropped and, unless a response was already written, the request fails
// with domain.ErrSessionExpired. Routes that sign out on purpose must not
// use it.
func SessionExpiry(routes *notify.RouteRecorder, auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			route, ok := routes.Take()
			if !ok || route != domain.RouteLogin {
				return err
			}
			auth.Expire()
			if c.Response().Committed {
				return err
			}
			return domain.ErrSessionExpired
		}
	}
}
