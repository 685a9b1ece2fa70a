package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	mfs "github.com/raoulx24/modwatch/internal/fs"
	"github.com/raoulx24/modwatch/internal/hasher"
)

// HashStore persists the digest of the last successful build.
type HashStore struct {
	path string
	fs   mfs.FS
}

func NewHashStore(path string, filesystem mfs.FS) *HashStore {
	if filesystem == nil {
		filesystem = mfs.New()
	}
	return &HashStore{path: path, fs: filesystem}
}

// Load returns the stored digest, or "" when nothing was recorded yet.
func (s *HashStore) Load() (hasher.Digest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading stored hash: %w", err)
	}
	return hasher.Digest(strings.TrimSpace(string(data))), nil
}

// Save overwrites the record, creating parent directories.
func (s *HashStore) Save(ctx context.Context, d hasher.Digest) error {
	if err := s.fs.WriteFile(ctx, s.path, []byte(d)); err != nil {
		return fmt.Errorf("writing stored hash: %w", err)
	}
	return nil
}
