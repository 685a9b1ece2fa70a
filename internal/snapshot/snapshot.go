// Package snapshot describes the state of the mod source tree and the build
// artifacts found next to it.
package snapshot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Snapshot maps slash-separated paths, relative to the source root, to the
// modification time of every allow-listed file.
type Snapshot map[string]time.Time

// Change lists the paths that differ between two snapshots.
type Change struct {
	Added    []string
	Removed  []string
	Modified []string
}

func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0
}

// Take stats every allow-listed file under root. Files that vanish while
// scanning are left out. A missing root gives an empty snapshot.
func Take(root string, exts []string) (Snapshot, error) {
	files, err := Files(root, exts)
	if err != nil {
		return nil, err
	}

	snap := make(Snapshot, len(files))
	for _, rel := range files {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		snap[rel] = info.ModTime()
	}
	return snap, nil
}

// Diff reports what changed from prev to s, each list sorted.
func (s Snapshot) Diff(prev Snapshot) Change {
	var c Change
	for p, mt := range s {
		old, ok := prev[p]
		switch {
		case !ok:
			c.Added = append(c.Added, p)
		case !old.Equal(mt):
			c.Modified = append(c.Modified, p)
		}
	}
	for p := range prev {
		if _, ok := s[p]; !ok {
			c.Removed = append(c.Removed, p)
		}
	}
	slices.Sort(c.Added)
	slices.Sort(c.Removed)
	slices.Sort(c.Modified)
	return c
}

// Files returns the allow-listed regular files (or symlinks to one) under root as slash-separated
// relative paths, ordered component by component so that "a/x" sorts before
// "a-b/x" regardless of how the OS lists directories.
func Files(root string, exts []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if !Allowed(path, exts) || !isRegular(path, d) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(files, comparePaths)
	return files, nil
}

// isRegular follows a symlink to its target. Symlinked directories are not
// descended into.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Allowed reports whether path carries one of the extensions (".java").
func Allowed(path string, exts []string) bool {
	return slices.Contains(exts, filepath.Ext(path))
}

func comparePaths(a, b string) int {
	return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
}
