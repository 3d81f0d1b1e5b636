package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// timestampKey is the envelope field holding the fetch time.
const timestampKey = "timestamp"

// legacyTimestampLayout is ISO8601 without a zone offset, read as local time.
const legacyTimestampLayout = "2006-01-02T15:04:05.999999"

// ContentCacheConfig configures a ContentCache.
type ContentCacheConfig[T any] struct {
	// Name is the content type; the document is stored under it.
	Name string

	// Key is the envelope field holding the payload. Defaults to Name.
	Key string

	// TTL is the maximum age of a cached payload.
	TTL time.Duration

	// Fallback is used when both the cache and the fetch fail.
	Fallback domain.FallbackPool[T]
}

// ContentCache is a read-through cache for one content type.
//
// Get resolves in three tiers: a persisted payload younger than the TTL,
// then a live fetch which is persisted on success, then a random member
// of the fallback pool. Failures are logged and never returned.
type ContentCache[T any] struct {
	name     string
	key      string
	ttl      time.Duration
	fallback domain.FallbackPool[T]
	store    driven.CacheStore
	logger   *slog.Logger
	now      func() time.Time

	// mu serialises Get so each content type has a single writer.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewContentCache creates a cache persisted through store.
func NewContentCache[T any](store driven.CacheStore, cfg ContentCacheConfig[T], logger *slog.Logger) *ContentCache[T] {
	key := cfg.Key
	if key == "" {
		key = cfg.Name
	}
	return &ContentCache[T]{
		name:     cfg.Name,
		key:      key,
		ttl:      cfg.TTL,
		fallback: cfg.Fallback,
		store:    store,
		logger:   orDiscard(logger).With("cache", cfg.Name),
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
}

// Name returns the content type.
func (c *ContentCache[T]) Name() string {
	return c.name
}

// Get returns the best available payload and the tier that produced it.
func (c *ContentCache[T]) Get(ctx context.Context, fetch driven.Fetcher[T]) (T, domain.Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	cached, err := c.load()
	switch {
	case err == nil && cached.Valid(now, c.ttl):
		c.logger.Debug("cache hit", "age", cached.Age(now).Round(time.Second))
		return cached.Payload, domain.ResolvedCache
	case err == nil:
		c.logger.Debug("cache expired", "age", cached.Age(now).Round(time.Second))
	case errors.Is(err, domain.ErrNotFound):
		c.logger.Debug("cache empty")
	default:
		c.logger.Warn("cache unreadable, refetching", "error", err)
	}

	payload, err := fetch.Fetch(ctx)
	if err == nil {
		if saveErr := c.save(payload, now); saveErr != nil {
			c.logger.Warn("failed to persist cache", "error", saveErr)
		}
		return payload, domain.ResolvedLive
	}

	if errors.Is(err, domain.ErrProviderDisabled) {
		c.logger.Debug("provider disabled, using fallback")
	} else {
		c.logger.Warn("fetch failed, using fallback", "error", err)
	}

	v, ok := c.fallback.Pick(c.rng)
	if !ok {
		c.logger.Warn("fallback pool empty")
	}
	return v, domain.ResolvedFallback
}

// Peek returns the persisted payload without fetching, regardless of age.
// Returns domain.ErrNotFound or domain.ErrCacheCorrupt when nothing usable
// is stored.
func (c *ContentCache[T]) Peek() (domain.CachedContent[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Invalidate deletes the persisted payload so the next Get fetches.
func (c *ContentCache[T]) Invalidate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(c.name)
}

func (c *ContentCache[T]) load() (domain.CachedContent[T], error) {
	data, err := c.store.Load(c.name)
	if err != nil {
		return domain.CachedContent[T]{}, err
	}
	return decodeEnvelope[T](data, c.key)
}

func (c *ContentCache[T]) save(payload T, at time.Time) error {
	data, err := encodeEnvelope(payload, c.key, at)
	if err != nil {
		return err
	}
	return c.store.Save(c.name, data)
}

// encodeEnvelope builds {"timestamp": ..., "<key>": payload}.
func encodeEnvelope[T any](payload T, key string, at time.Time) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", key, err)
	}
	ts, err := json.Marshal(at.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("encoding timestamp: %w", err)
	}
	return json.MarshalIndent(map[string]json.RawMessage{
		timestampKey: ts,
		key:          body,
	}, "", "  ")
}

// decodeEnvelope parses an envelope. Anything short of a complete
// envelope is reported as domain.ErrCacheCorrupt.
func decodeEnvelope[T any](data []byte, key string) (domain.CachedContent[T], error) {
	var out domain.CachedContent[T]

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return out, fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
	}

	rawTS, ok := doc[timestampKey]
	if !ok {
		return out, fmt.Errorf("%w: missing %s", domain.ErrCacheCorrupt, timestampKey)
	}
	rawPayload, ok := doc[key]
	if !ok || string(rawPayload) == "null" {
		return out, fmt.Errorf("%w: missing %s", domain.ErrCacheCorrupt, key)
	}

	var ts string
	if err := json.Unmarshal(rawTS, &ts); err != nil {
		return out, fmt.Errorf("%w: timestamp: %v", domain.ErrCacheCorrupt, err)
	}
	fetchedAt, err := parseTimestamp(ts)
	if err != nil {
		return out, fmt.Errorf("%w: timestamp: %v", domain.ErrCacheCorrupt, err)
	}

	if err := json.Unmarshal(rawPayload, &out.Payload); err != nil {
		return out, fmt.Errorf("%w: %s: %v", domain.ErrCacheCorrupt, key, err)
	}
	out.FetchedAt = fetchedAt
	return out, nil
}

// parseTimestamp accepts RFC3339 and zone-less ISO8601 in local time.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(legacyTimestampLayout, s, time.Local)
}
