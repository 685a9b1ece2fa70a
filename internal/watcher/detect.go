package watcher

import (
	"context"
	"time"

	"github.com/raoulx24/modwatch/internal/snapshot"
	"github.com/raoulx24/modwatch/internal/worker"
)

// detect runs a job when cur differs from last and reports whether it did.
func (w *Watcher) detect(ctx context.Context, last, cur snapshot.Snapshot) bool {
	change := cur.Diff(last)
	if change.Empty() {
		return false
	}

	w.log.Info("Change detected.",
		"added", len(change.Added), "removed", len(change.Removed), "modified", len(change.Modified))

	var paths []string
	paths = append(paths, change.Added...)
	paths = append(paths, change.Removed...)
	paths = append(paths, change.Modified...)

	job := worker.Job{Reason: ModePoll, Paths: paths, At: time.Now()}
	if err := w.handler.Handle(ctx, job); err != nil {
		w.log.Error("build-deploy failed", "error", err)
	}
	return true
}
