// Package worker runs the build-deploy orchestrator as a subprocess for
// every change the watcher reports.
package worker

import (
	"context"
	"fmt"

	"github.com/raoulx24/modwatch/internal/build"
	"github.com/raoulx24/modwatch/internal/logging"
	"github.com/raoulx24/modwatch/internal/mailbox"
)

// Command is the orchestrator invocation.
type Command struct {
	Dir  string
	Argv []string
}

// Worker runs one orchestrator process at a time. The process is never
// interrupted; each run is independent of the previous one.
type Worker struct {
	cmd    Command
	runner build.Runner
	log    logging.Logger
	mb     *mailbox.Mailbox[Job]
}

// New creates a worker. A nil runner starts real processes.
func New(cmd Command, runner build.Runner, log logging.Logger, mb *mailbox.Mailbox[Job]) *Worker {
	log.Debug("creating worker", "argv", cmd.Argv)
	if runner == nil {
		runner = build.ExecRunner{}
	}
	return &Worker{cmd: cmd, runner: runner, log: log, mb: mb}
}

// Start takes jobs from the mailbox until ctx is cancelled. A run in
// progress finishes before Start returns.
func (w *Worker) Start(ctx context.Context) {
	w.log.Debug("starting worker")
	for {
		job, ok := w.mb.Take(ctx)
		if !ok {
			return
		}
		if err := w.Handle(ctx, job); err != nil {
			w.log.Error("build-deploy failed", "error", err)
		}
	}
}

// Handle runs the orchestrator once and waits for it.
func (w *Worker) Handle(ctx context.Context, job Job) error {
	w.log.Info("running build-deploy", "reason", job.Reason, "changed", len(job.Paths))
	if err := w.runner.Run(ctx, w.cmd.Dir, w.cmd.Argv); err != nil {
		return fmt.Errorf("running %s: %w", OrchestratorName, err)
	}
	w.log.Info("build-deploy finished")
	return nil
}
