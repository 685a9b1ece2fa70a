package cli

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	"github.com/raoulx24/modwatch/internal/build"
	"github.com/raoulx24/modwatch/internal/mailbox"
	"github.com/raoulx24/modwatch/internal/watcher"
	"github.com/raoulx24/modwatch/internal/worker"
)

// NewWatchCommand returns the watcher command. A nil runner starts the real
// build-deploy process on every change.
func NewWatchCommand(runner build.Runner) *cobra.Command {
	var (
		g    globalFlags
		poll bool
	)

	cmd := &cobra.Command{
		Use:   "watch-build-deploy",
		Short: "Watch the mod sources and run build-deploy on every change",
		Long: `Watches mod/src for changes to .java and .json files. By default
filesystem notifications are used, with edits debounced; --poll rescans
the tree on a schedule instead. Each change runs build-deploy as a
separate process. Stop with Ctrl+C.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if poll {
				cfg.Watch.Mode = watcher.ModePoll
			}
			sched, err := watcher.ParseSchedule(cfg.Watch.PollSchedule)
			if err != nil {
				return err
			}

			orchestrator, err := worker.ResolveOrchestrator(cfg.Watch.Orchestrator)
			if err != nil {
				return err
			}
			argv, err := g.childArgs(orchestrator, cfg.Root)
			if err != nil {
				return err
			}

			mb := mailbox.New[worker.Job]()
			w := worker.New(worker.Command{Dir: cfg.Root, Argv: argv}, runnerOrExec(runner, cmd), log, mb)

			watch := watcher.New(watcher.Options{
				Dir:        cfg.SourceDir(),
				Extensions: cfg.Source.Extensions,
				Mode:       cfg.Watch.Mode,
				Debounce:   cfg.Watch.DebounceWindow,
				Schedule:   sched,
			}, log, mb, w)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.Start(ctx)
			}()

			err = watch.Start(ctx)
			cancel()
			// let a running build-deploy finish
			wg.Wait()
			log.Info("exit complete")
			return err
		},
	}

	g.register(cmd)
	cmd.Flags().BoolVar(&poll, "poll", false, "poll for changes instead of using filesystem notifications")
	return cmd
}
