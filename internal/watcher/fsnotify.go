package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raoulx24/modwatch/internal/snapshot"
	"github.com/raoulx24/modwatch/internal/worker"
)

// StartFsNotify watches the source tree recursively and puts a job in the
// mailbox once events on allow-listed files settle for the debounce window.
func (w *Watcher) StartFsNotify(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPushUnavailable, err)
	}
	defer fw.Close()

	if err := addRecursive(fw, w.opts.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.opts.Dir, err)
	}

	deb := NewDebouncer(w.opts.Debounce, func(paths []string) {
		w.log.Debug("debounce elapsed", "paths", paths)
		if w.mb.HasJob() {
			w.log.Debug("replacing job the worker has not picked up yet")
		}
		w.mb.Put(worker.Job{Reason: ModeFsnotify, Paths: paths, At: time.Now()})
	})
	defer deb.Stop()

	w.log.Info(fmt.Sprintf("Watching %s. Ctrl+C to stop.", w.opts.Dir))

	for {
		select {
		case <-ctx.Done():
			if deb.Pending() {
				w.log.Info("Stopping; discarding changes still in the debounce window.")
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				w.log.Error("events channel closed")
				return nil
			}
			w.log.Debug("event", "name", ev.Name, "op", ev.Op)
			w.handleEvent(fw, deb, ev)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, deb *Debouncer, ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
			if err := addRecursive(fw, ev.Name); err != nil {
				w.log.Warn("cannot watch new directory", "dir", ev.Name, "error", err)
			}
			// a directory moved in brings files that produced no events
			if files, err := snapshot.Files(ev.Name, w.opts.Extensions); err == nil && len(files) > 0 {
				deb.Trigger(filepath.Join(ev.Name, filepath.FromSlash(files[0])))
			}
			return
		}
	}

	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	if !w.relevant(ev.Name) {
		return
	}
	deb.Trigger(ev.Name)
}

// addRecursive watches root and every directory below it.
func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
}
