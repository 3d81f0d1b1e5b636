package driven

import "time"

// CacheStore persists content cache documents by content type.
// Implementations must replace documents atomically so that a reader
// never observes a partially written document.
type CacheStore interface {
	// Load returns the raw document for name.
	// Returns domain.ErrNotFound if no document exists.
	Load(name string) ([]byte, error)

	// Save atomically replaces the document for name.
	Save(name string, data []byte) error

	// Delete removes the document for name. Missing documents are not an error.
	Delete(name string) error

	// List returns every stored document.
	List() ([]CacheEntry, error)
}

// CacheEntry describes one stored cache document.
type CacheEntry struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
}

// StateStore persists small JSON documents of cross-cycle state.
type StateStore interface {
	// Load decodes the document for key into v.
	// Returns domain.ErrNotFound if absent and domain.ErrCacheCorrupt if
	// the document cannot be decoded.
	Load(key string, v any) error

	// Save atomically replaces the document for key with v.
	Save(key string, v any) error
}
