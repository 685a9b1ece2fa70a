package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/raoulx24/modwatch/internal/snapshot"
)

// StartPolling rescans the tree on every schedule tick and runs the handler
// inline when the snapshot differs. No debounce: a change made during a
// build is picked up by the first scan after it.
func (w *Watcher) StartPolling(ctx context.Context) {
	w.log.Info(fmt.Sprintf("Watching %s (poll mode). Ctrl+C to stop.", w.opts.Dir))

	last, ok := w.take()
	for !ok {
		// without a baseline every file would look added
		if !w.sleep(ctx) {
			return
		}
		last, ok = w.take()
	}

	for {
		if !w.sleep(ctx) {
			return
		}
		cur, ok := w.take()
		if !ok {
			continue
		}
		if w.detect(ctx, last, cur) {
			last = cur
		}
	}
}

// sleep waits for the next schedule tick; false once ctx is done.
func (w *Watcher) sleep(ctx context.Context) bool {
	t := time.NewTimer(time.Until(w.opts.Schedule.Next(time.Now())))
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (w *Watcher) take() (snapshot.Snapshot, bool) {
	snap, err := snapshot.Take(w.opts.Dir, w.opts.Extensions)
	if err != nil {
		w.log.Error("scanning sources failed", "dir", w.opts.Dir, "error", err)
		return nil, false
	}
	return snap, true
}
