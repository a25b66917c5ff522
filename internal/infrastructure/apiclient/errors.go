package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a non-2xx API response.
type Error struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Message is the server-supplied message, or the status text.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error is an authentication error.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true if the error is a permission error.
func (e *Error) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsNotFound returns true if the error is a not found error.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsAPIError checks if err wraps an API error and returns it.
func IsAPIError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// parseError builds an *Error from an error response, preferring the
// envelope message, then an "error" member, then the status text.
func parseError(statusCode int, body []byte) error {
	var envelope struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return &Error{StatusCode: statusCode, Message: envelope.Message}
		}
		if msg := errorMember(envelope.Error); msg != "" {
			return &Error{StatusCode: statusCode, Message: msg}
		}
	}

	msg := http.StatusText(statusCode)
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") && len(text) < 256 {
		msg = text
	}
	return &Error{StatusCode: statusCode, Message: msg}
}

// errorMember reads {"error": "msg"} or {"error": {"message": "msg"}}.
func errorMember(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested.Message
	}
	return ""
}
