// Package watcher monitors the mod source tree and reports changes as
// build-deploy jobs.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/modwatch/internal/fsprobe"
	"github.com/raoulx24/modwatch/internal/logging"
	"github.com/raoulx24/modwatch/internal/mailbox"
	"github.com/raoulx24/modwatch/internal/snapshot"
	"github.com/raoulx24/modwatch/internal/worker"
)

const (
	ModeAuto     = "auto"
	ModePoll     = "poll"
	ModeFsnotify = "fsnotify"
)

// ErrPushUnavailable means fsnotify could not be set up at all.
var ErrPushUnavailable = errors.New("fsnotify unavailable")

// Handler runs a job to completion.
type Handler interface {
	Handle(ctx context.Context, job worker.Job) error
}

type Options struct {
	Dir          string
	Extensions   []string
	Mode         string
	Debounce     time.Duration
	Schedule     cron.Schedule // poll rescans
	ProbeTimeout time.Duration
}

// Watcher watches Dir. In fsnotify mode debounced jobs go to the mailbox and
// a worker runs them; in poll mode every change runs the handler inline.
type Watcher struct {
	opts    Options
	log     logging.Logger
	mb      *mailbox.Mailbox[worker.Job]
	handler Handler
}

func New(opts Options, log logging.Logger, mb *mailbox.Mailbox[worker.Job], handler Handler) *Watcher {
	return &Watcher{opts: opts, log: log, mb: mb, handler: handler}
}

// Start runs the configured strategy until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	switch w.opts.Mode {
	case ModeFsnotify:
		return w.StartFsNotify(ctx)

	case ModePoll:
		w.StartPolling(ctx)
		return nil

	case ModeAuto, "":
		res := fsprobe.Probe(w.opts.Dir, w.opts.ProbeTimeout)
		if res.FsnotifySupported {
			err := w.StartFsNotify(ctx)
			if !errors.Is(err, ErrPushUnavailable) {
				return err
			}
			w.log.Warn("fsnotify failed to start", "error", err)
		} else {
			w.log.Warn("fsnotify disabled", "reason", res.Reason)
		}
		w.log.Info("Falling back to poll mode.")
		w.StartPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown watch mode %q", w.opts.Mode)
	}
}

func (w *Watcher) relevant(path string) bool {
	return snapshot.Allowed(path, w.opts.Extensions)
}
