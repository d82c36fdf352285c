package mapping

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is the workspace-relative path of the persisted mapping store.
const File = "mappings/account-mappings.csv"

// Load reads mappings/account-mappings.csv from a workspace root.
// A missing file yields an empty store.
func Load(root string, opts Options) (*Store, error) {
	f, err := os.Open(filepath.Join(root, File))
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(opts), nil
		}
		return nil, fmt.Errorf("opening account mappings: %w", err)
	}
	defer f.Close()

	entries, err := ReadMappings(f)
	if err != nil {
		return nil, fmt.Errorf("reading account mappings: %w", err)
	}
	return NewStore(opts, entries...), nil
}

// Save writes the store to mappings/account-mappings.csv.
func (s *Store) Save(root string) error {
	path := filepath.Join(root, File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating mappings dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating account mappings file: %w", err)
	}
	defer f.Close()

	if err := WriteMappings(f, s.All()); err != nil {
		return fmt.Errorf("writing account mappings: %w", err)
	}
	return nil
}
