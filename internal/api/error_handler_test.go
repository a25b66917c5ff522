package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/request"
	"github.com/localtalent/console/internal/pkg/validate"
)

func handle(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"no session", domain.ErrNoSession, http.StatusUnauthorized},
		{"expired", domain.ErrSessionExpired, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not found", fmt.Errorf("row 3: %w", domain.ErrNotFound), http.StatusNotFound},
		{"busy", domain.ErrRowBusy, http.StatusConflict},
		{"unknown action", domain.ErrUnknownAction, http.StatusBadRequest},
		{"echo error", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"), http.StatusRequestEntityTooLarge},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := handle(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestErrorHandler_SessionRedirect(t *testing.T) {
	_, resp := handle(t, domain.ErrSessionExpired)
	if resp.Redirect != domain.RouteLogin {
		t.Fatalf("expected login redirect, got %+v", resp)
	}
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	code, resp := handle(t, validate.Fail("rate", "rate must be a number"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Field != "rate" {
		t.Fatalf("unexpected fields: %+v", resp.Fields)
	}
}

func TestErrorHandler_UpstreamMessage(t *testing.T) {
	failure := &request.Failure{Kind: request.FailureBusiness, StatusCode: http.StatusConflict, Message: "Title already taken"}
	code, resp := handle(t, fmt.Errorf("%w: %w", domain.ErrRequestFailed, failure))
	if code != http.StatusBadGateway || resp.Error != "Title already taken" {
		t.Fatalf("unexpected response %d %+v", code, resp)
	}

	code, resp = handle(t, fmt.Errorf("%w: %w", domain.ErrLoginFailed, &request.Failure{Kind: request.FailureAuth, Message: "Invalid credentials"}))
	if code != http.StatusUnauthorized || resp.Error != "Invalid credentials" {
		t.Fatalf("unexpected response %d %+v", code, resp)
	}
}
