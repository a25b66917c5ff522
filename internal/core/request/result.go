package request

import (
	"errors"
	"net/http"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/infrastructure/apiclient"
)

// FailureKind classifies why a request produced no value.
type FailureKind int

const (
	// FailureTransport covers network errors and unreachable servers.
	FailureTransport FailureKind = iota + 1
	// FailureAuth means the session is gone: refresh failed or the server
	// still answered 401/403.
	FailureAuth
	// FailureBusiness is a non-2xx answer carrying a server message.
	FailureBusiness
	// FailureDecode means the envelope could not be read into the target type.
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureAuth:
		return "auth"
	case FailureBusiness:
		return "business"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

const fallbackMessage = "Something went wrong"

// Failure is the typed error side of a Result.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	Err        error
}

func (f *Failure) Error() string { return f.Kind.String() + ": " + f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// Result is either a decoded value or a Failure. It never panics.
type Result[T any] struct {
	Value   T
	Message string
	// Empty is true when the envelope carried no data member (or null).
	Empty   bool
	Failure *Failure
}

// OK reports whether the request succeeded.
func (r Result[T]) OK() bool { return r.Failure == nil }

// Get returns the value and whether the request succeeded.
func (r Result[T]) Get() (T, bool) { return r.Value, r.Failure == nil }

// classify maps adapter errors onto the failure taxonomy.
func classify(err error) *Failure {
	if errors.Is(err, domain.ErrSessionExpired) {
		return &Failure{Kind: FailureAuth, StatusCode: http.StatusUnauthorized, Message: "Session expired, please sign in again", Err: err}
	}
	if apiErr, ok := apiclient.IsAPIError(err); ok {
		kind := FailureBusiness
		if apiErr.IsUnauthorized() || apiErr.IsForbidden() {
			kind = FailureAuth
		}
		return &Failure{Kind: kind, StatusCode: apiErr.StatusCode, Message: messageOr(apiErr.Message), Err: err}
	}
	return &Failure{Kind: FailureTransport, Message: messageOr(err.Error()), Err: err}
}

func messageOr(msg string) string {
	if msg == "" {
		return fallbackMessage
	}
	return msg
}
