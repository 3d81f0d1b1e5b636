package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

// RateLimitError represents a throttled request with its reset time.
// It is transient: retrying after the reset succeeds.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a non-2xx response.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error %d: %s (URL: %s)", e.Provider, e.StatusCode, e.Message, e.URL)
}

// Is reports client errors as domain.ErrBadResponse. Server errors and
// timeouts stay transient.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrBadResponse && e.permanent()
}

func (e *APIError) permanent() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

func badResponse(provider, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", provider, domain.ErrBadResponse, fmt.Sprintf(format, args...))
}
