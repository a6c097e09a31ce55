package app

import (
	"errors"

	"github.com/cinegate/cinegate/internal/ports"
)

var ErrNotFound = ports.ErrNotFound

// ErrBusy signals a re-entrant invocation of an admin action whose
// busy flag is still set.
var ErrBusy = errors.New("action already in progress")

// ErrNotConfigured signals a missing API key or endpoint for an
// upstream collaborator.
var ErrNotConfigured = errors.New("upstream not configured")

// CodedError carries a stable code next to the human-readable message
// surfaced to the operator.
//
// Codes in use: invalid_params, http_status, network_error, bad_response.
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error { return e.Err }

// UserMessage extracts the message worth showing to the operator:
// the store-provided error text when there is one, otherwise a
// generic fallback.
func UserMessage(err error, fallback string) string {
	var coded *CodedError
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	if err != nil && errors.Is(err, ErrNotConfigured) {
		return err.Error()
	}
	return fallback
}
