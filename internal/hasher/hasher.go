// Package hasher computes the content digest of the mod source tree.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/raoulx24/modwatch/internal/snapshot"
)

// Digest is a lowercase hex SHA-256.
type Digest string

func (d Digest) String() string {
	return string(d)
}

// Hash folds the bytes of every allow-listed file under root into one
// SHA-256, in snapshot.Files order. Only contents are hashed, paths are not,
// so digests stay comparable with the ones already persisted by earlier
// tooling.
func Hash(root string, exts []string) (Digest, error) {
	files, err := snapshot.Files(root, exts)
	if err != nil {
		return "", fmt.Errorf("listing sources: %w", err)
	}

	h := sha256.New()
	for _, rel := range files {
		if err := hashFile(h, filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			return "", err
		}
	}
	return Digest(hex.EncodeToString(h.Sum(nil))), nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}
	return nil
}
