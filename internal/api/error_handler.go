package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/request"
	"github.com/localtalent/console/internal/pkg/validate"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string                `json:"error"`
	Redirect string                `json:"redirect,omitempty"`
	Fields   []validate.FieldError `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *validate.Error
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: ve.Fields}
	}

	// Known domain errors map to fixed HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, errorResponse{Error: "session expired", Redirect: domain.RouteLogin}
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, errorResponse{Error: "not signed in", Redirect: domain.RouteLogin}
	case errors.Is(err, domain.ErrLoginFailed):
		return http.StatusUnauthorized, errorResponse{Error: upstreamMessage(err, "invalid credentials")}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, domain.ErrRowBusy):
		return http.StatusConflict, errorResponse{Error: "row action already in progress"}
	case errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrRequestFailed):
		return http.StatusBadGateway, errorResponse{Error: upstreamMessage(err, "upstream request failed")}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// upstreamMessage prefers the message the remote API sent.
func upstreamMessage(err error, fallback string) string {
	var f *request.Failure
	if errors.As(err, &f) && f.Message != "" {
		return f.Message
	}
	return fallback
}
