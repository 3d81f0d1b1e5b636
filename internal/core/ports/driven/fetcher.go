package driven

import "context"

// Fetcher retrieves one payload from an external provider.
// It returns an error on network or parse failure; retries are the
// caller's concern. A provider without credentials returns
// domain.ErrProviderDisabled or its documented default.
type Fetcher[T any] interface {
	Fetch(ctx context.Context) (T, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context) (T, error)

// Fetch calls f(ctx).
func (f FetcherFunc[T]) Fetch(ctx context.Context) (T, error) {
	return f(ctx)
}
