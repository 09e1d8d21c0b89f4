package crawler

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is matched by every *StatusError via errors.Is.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// StatusError is returned by Fetcher when a listing page answers with
// anything other than 200 OK. Callers treat it as a soft failure.
type StatusError struct {
	// URL is the requested URL.
	URL string

	// Code is the HTTP status code received.
	Code int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to retrieve %s: status code %d", e.URL, e.Code)
}

// Is reports whether target is ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
