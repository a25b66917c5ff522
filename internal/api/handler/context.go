package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/localtalent/console/internal/api/middleware"
	"github.com/localtalent/console/internal/core/domain"
)

// ctxSession returns the session injected by RequireSession. A missing
// session means the middleware did not run; treat it as signed out.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get(middleware.KeySession).(*domain.Session)
	if session == nil {
		return nil, domain.ErrNoSession
	}
	return session, nil
}
