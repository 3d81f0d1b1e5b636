package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

const stateSuffix = "_state.json"

// StateStore keeps small JSON state documents in a directory.
type StateStore struct {
	dir string
}

var _ driven.StateStore = (*StateStore)(nil)

// NewStateStore creates the directory if needed.
func NewStateStore(dir string) (*StateStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &StateStore{dir: dir}, nil
}

// Path returns the file path for key.
func (s *StateStore) Path(key string) string {
	return filepath.Join(s.dir, key+stateSuffix)
}

// Load decodes the document for key into v.
func (s *StateStore) Load(key string, v any) error {
	if err := validName(key); err != nil {
		return err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading %s state: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s state: %v", domain.ErrCacheCorrupt, key, err)
	}
	return nil
}

// Save atomically replaces the document for key.
func (s *StateStore) Save(key string, v any) error {
	if err := validName(key); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s state: %w", key, err)
	}
	return writeFileAtomic(s.Path(key), data, 0600)
}
