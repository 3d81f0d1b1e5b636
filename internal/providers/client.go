package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// UserAgent is sent with every request.
	UserAgent = "inkpanel/1.0"

	maxErrorBody = 512
)

// Client performs throttled JSON requests for one provider.
type Client struct {
	name    string
	http    *http.Client
	limiter *RateLimiter
}

// NewClient creates a client allowing perSecond requests. A nil httpClient
// uses one with DefaultTimeout.
func NewClient(name string, perSecond float64, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		name:    name,
		http:    httpClient,
		limiter: NewRateLimiter(perSecond, 1),
	}
}

// Name returns the provider name used in errors and logs.
func (c *Client) Name() string {
	return c.name
}

// HTTPClient returns the underlying http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// GetJSON fetches rawURL with query and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return badResponse(c.name, "building request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return badResponse(c.name, "decoding response: %v", err)
	}
	return nil
}

// Do sends req after waiting for the limiter and converts throttling and
// non-2xx responses into errors. On success the caller owns resp.Body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("%s: rate limit wait: %w", c.name, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}

	if err := c.limiter.CheckRateLimit(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			Provider:   c.name,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        redactURL(req.URL),
		}
	}

	return resp, nil
}

// redactURL drops the query, which may carry API keys.
func redactURL(u *url.URL) string {
	clean := *u
	clean.RawQuery = ""
	return clean.String()
}
