package domain

import "errors"

var (
	ErrNoSession      = errors.New("no stored session")
	ErrSessionExpired = errors.New("session expired")
	ErrValidation     = errors.New("validation failed")
	ErrLoginFailed    = errors.New("login failed")
	ErrRequestFailed  = errors.New("request failed")
	ErrForbidden      = errors.New("access forbidden")
	ErrNotFound       = errors.New("not found")
	ErrRowBusy        = errors.New("row action already in flight")
	ErrUnknownAction  = errors.New("action not available")
)
