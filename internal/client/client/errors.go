package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dysh/internal/common"
)

var (
	// ErrUnavailable wraps transport failures: the backend could not be
	// reached or the response could not be read.
	ErrUnavailable = errors.New("server unavailable")

	// ErrBackendRejected matches any *APIError.
	ErrBackendRejected = errors.New("request rejected by backend")

	ErrInvalidArgument = common.ErrInvalidArgument
)

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrBackendRejected
}
