package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Content Errors.

	// ErrContentUnavailable indicates the data a mode needs could not be obtained.
	// The orchestrator demotes Holiday and YearEnd cycles to Dashboard on this error.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrProviderDisabled indicates a provider has no credentials configured.
	// Callers substitute the provider's documented default value.
	ErrProviderDisabled = errors.New("provider disabled")

	// ErrBadResponse indicates a provider answered with a response that will
	// not improve on retry, such as a client error or an unparseable body.
	ErrBadResponse = errors.New("bad provider response")

	// ErrCacheCorrupt indicates a persisted cache document could not be decoded.
	// It is always treated as a cache miss.
	ErrCacheCorrupt = errors.New("cache corrupt")

	// Display Errors.

	// ErrDisplayUnavailable indicates the display driver could not be reached.
	ErrDisplayUnavailable = errors.New("display unavailable")

	// ErrQuietHours indicates a draw was refused inside the quiet window.
	ErrQuietHours = errors.New("quiet hours active")
)
