package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Authentication errors. The messages are surfaced to HTTP clients
	// verbatim, hence the capitalization.
	ErrPasswordLoginDisabled = errors.New("Password login disabled")
	ErrInvalidPassword       = errors.New("Invalid password")
	ErrOAuthNotConfigured    = errors.New("OAuth not configured")
)
