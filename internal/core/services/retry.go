package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// RetryPolicy bounds how often a fetch is attempted.
type RetryPolicy struct {
	// Attempts is the total number of calls, including the first.
	Attempts int

	// Backoff is the fixed wait between attempts.
	Backoff time.Duration
}

// DefaultRetryPolicy makes three attempts two seconds apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Backoff: 2 * time.Second}
}

// Retrier applies a RetryPolicy to fetch operations.
type Retrier struct {
	policy RetryPolicy
	logger *slog.Logger
}

// NewRetrier creates a retrier. Attempts below one are raised to one.
func NewRetrier(policy RetryPolicy, logger *slog.Logger) *Retrier {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return &Retrier{policy: policy, logger: orDiscard(logger)}
}

// Retry calls fn until it succeeds, the attempts are exhausted, or the
// error is not worth retrying. Disabled providers, bad responses and
// context cancellation are returned immediately.
func Retry[T any](ctx context.Context, r *Retrier, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= r.policy.Attempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !retryable(ctx, err) {
			return zero, err
		}
		if attempt == r.policy.Attempts {
			break
		}

		r.logger.Debug("retrying fetch",
			"op", op, "attempt", attempt, "max_attempts", r.policy.Attempts, "error", err)

		timer := time.NewTimer(r.policy.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, fmt.Errorf("%s: giving up after %d attempts: %w", op, r.policy.Attempts, lastErr)
}

// Retrying wraps f so every call goes through r.
func Retrying[T any](r *Retrier, op string, f driven.Fetcher[T]) driven.Fetcher[T] {
	return driven.FetcherFunc[T](func(ctx context.Context) (T, error) {
		return Retry(ctx, r, op, f.Fetch)
	})
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch {
	case errors.Is(err, domain.ErrProviderDisabled),
		errors.Is(err, domain.ErrBadResponse),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}
