package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/pkg/token"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func toSessionResponse(s *domain.Session) sessionResponse {
	resp := sessionResponse{User: s.User, Role: s.User.Role}
	if claims, err := token.Inspect(s.AccessToken); err == nil && !claims.ExpiresAt.IsZero() {
		resp.ExpiresAt = claims.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// Register creates a new account on the marketplace. The console stays
// signed out afterwards.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "account created, sign in to continue", Redirect: domain.RouteLogin})
}

// Login signs the console in.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.authService.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}
	session, ok := h.authService.Current()
	if !ok {
		return domain.ErrNoSession
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout signs the console out. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, messageResponse{Message: "signed out", Redirect: domain.RouteLogin})
}

// Me returns the adopted identity.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}
