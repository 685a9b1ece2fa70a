package fs

import (
	"errors"
	"syscall"
)

// isTransient reports whether an operation is worth retrying. A source that
// changed mid-copy is retried too: the next attempt copies the final bytes.
func isTransient(err error) bool {
	if errors.Is(err, errSourceChanged) {
		return true
	}
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETIMEDOUT)
}
