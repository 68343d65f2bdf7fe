package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is the normalized form of every failed relay call: the relay's
// {code, message} body when it sent one, the transport message otherwise.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the matching sentinel and the transport cause, so both
// errors.Is(err, ErrUnavailable) and errors.Is(err, context.Canceled) work.
func (e *APIError) Unwrap() []error {
	var errs []error
	switch {
	case e.StatusCode == 0:
		errs = append(errs, ErrUnavailable)
	case e.StatusCode == http.StatusUnauthorized:
		errs = append(errs, ErrUnauthorized)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Message returns the user-facing text of err, falling back to fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
