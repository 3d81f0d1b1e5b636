package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

const cacheSuffix = "_cache.json"

// CacheStore keeps one JSON document per content type in a directory.
type CacheStore struct {
	dir string
}

var _ driven.CacheStore = (*CacheStore)(nil)

// NewCacheStore creates the directory if needed.
func NewCacheStore(dir string) (*CacheStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &CacheStore{dir: dir}, nil
}

// Dir returns the directory holding the cache files.
func (s *CacheStore) Dir() string {
	return s.dir
}

// Path returns the file path for name.
func (s *CacheStore) Path(name string) string {
	return filepath.Join(s.dir, name+cacheSuffix)
}

// Load reads the document for name.
func (s *CacheStore) Load(name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s cache: %w", name, err)
	}
	return data, nil
}

// Save atomically replaces the document for name.
func (s *CacheStore) Save(name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	return writeFileAtomic(s.Path(name), data, 0600)
}

// Delete removes the document for name.
func (s *CacheStore) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting %s cache: %w", name, err)
	}
	return nil
}

// List returns every cache document, sorted by name.
func (s *CacheStore) List() ([]driven.CacheEntry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing cache directory: %w", err)
	}

	var out []driven.CacheEntry //nolint:prealloc // filtered
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), cacheSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, driven.CacheEntry{
			Name:       strings.TrimSuffix(e.Name(), cacheSuffix),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// validName rejects names that would escape the directory.
func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: cache name %q", domain.ErrInvalidInput, name)
	}
	return nil
}
