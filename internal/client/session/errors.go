package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when no Credential is available; no
	// network call was made.
	ErrNotAuthenticated = errors.New("not authenticated - please sign in")

	// ErrAuthExpired is returned when the access token was rejected and could
	// not be refreshed. The session has been signed out.
	ErrAuthExpired = errors.New("authentication expired - please sign in again")

	// ErrMalformedResponse reports an auth response whose shape does not
	// yield a usable Credential.
	ErrMalformedResponse = errors.New("malformed auth response")

	// ErrRejected matches any *RejectedError.
	ErrRejected = errors.New("auth request rejected")
)

// RejectedError carries the backend's refusal of a sign-in or refresh
// exchange.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth request rejected: status %d", e.StatusCode)
	}
	return fmt.Sprintf("auth request rejected: status %d: %s", e.StatusCode, e.Message)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}
