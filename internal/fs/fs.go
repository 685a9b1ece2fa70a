// Package fs defines the filesystem abstraction used by modwatch.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"io/fs"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	Mode  fs.FileMode
	MTime time.Time
	Inode uint64
}

type FS interface {
	Stat(path string) (FileInfo, error)
	// CopyFile copies src to dst keeping permission bits and modification time.
	CopyFile(ctx context.Context, src, dst string) error
	Rename(ctx context.Context, oldPath, newPath string) error
	Remove(path string) error
	MkdirAll(path string) error
	// WriteFile replaces path with data through a temporary sibling file.
	WriteFile(ctx context.Context, path string, data []byte) error
}
