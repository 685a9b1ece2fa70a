package fs

import (
	"context"
	"errors"
	"io"
	"os"
)

// errSourceChanged aborts a copy when the source is rewritten underneath it,
// e.g. by a build that is still packaging the jar.
var errSourceChanged = errors.New("source changed during copy")

func copyWithRetry(ctx context.Context, f FS, src, dst string) error {
	orig, err := f.Stat(src)
	if err != nil {
		return err
	}

	tmp := tmpName(dst)
	err = retry(ctx, "copy", func() error {
		if err := copyOnce(src, tmp, orig); err != nil {
			return err
		}

		now, err := f.Stat(src)
		if err != nil {
			return err
		}
		if sourceChanged(orig, now) {
			return errSourceChanged
		}
		return nil
	})
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := f.Rename(ctx, tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func sourceChanged(orig, now FileInfo) bool {
	if now.Inode != 0 && orig.Inode != 0 && now.Inode != orig.Inode {
		return true
	}
	if !now.MTime.Equal(orig.MTime) {
		return true
	}
	return now.Size != orig.Size
}

// copyOnce writes src to dst and stamps dst with the mode and mtime of info.
func copyOnce(src, dst string, info FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chmod(dst, info.Mode.Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.MTime, info.MTime)
}
