//go:build unix

package fs

import (
	"os"
	"syscall"
)

// inodeOf lets copy notice a source that was replaced by a new file.
func inodeOf(info os.FileInfo) uint64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return uint64(st.Ino)
}
