// Package common defines shared constants and sentinel errors used across
// the client layers of dysh. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Storage errors.
	ErrCorruptValue = errors.New("corrupt stored value")
	ErrInvalidKey   = errors.New("invalid encryption key")

	// Argument validation.
	ErrInvalidArgument = errors.New("invalid argument")
)
