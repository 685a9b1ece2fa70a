package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/modwatch/internal/logging"
	"github.com/raoulx24/modwatch/internal/mailbox"
)

type recordingRunner struct {
	mu    sync.Mutex
	calls [][]string
	err   error
	ran   chan struct{}
}

func (r *recordingRunner) Run(_ context.Context, _ string, argv []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, argv)
	r.mu.Unlock()
	if r.ran != nil {
		r.ran <- struct{}{}
	}
	return r.err
}

func (r *recordingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

var orchestrator = Command{Dir: "/project", Argv: []string{"build-deploy", "--root", "/project"}}

func TestHandleRunsOrchestrator(t *testing.T) {
	r := &recordingRunner{}
	w := New(orchestrator, r, logging.Nop(), mailbox.New[Job]())

	require.NoError(t, w.Handle(context.Background(), Job{Reason: "poll"}))
	assert.Equal(t, [][]string{orchestrator.Argv}, r.calls)
}

func TestHandleReportsFailure(t *testing.T) {
	r := &recordingRunner{err: errors.New("exit status 1")}
	w := New(orchestrator, r, logging.Nop(), mailbox.New[Job]())

	err := w.Handle(context.Background(), Job{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build-deploy")
}

func TestStartConsumesMailboxUntilCancelled(t *testing.T) {
	r := &recordingRunner{ran: make(chan struct{}, 4), err: errors.New("failing builds keep the worker alive")}
	mb := mailbox.New[Job]()
	w := New(orchestrator, r, logging.Nop(), mb)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		mb.Put(Job{Reason: "fsnotify", At: time.Now()})
		select {
		case <-r.ran:
		case <-time.After(time.Second):
			t.Fatal("worker did not run the job")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, 2, r.count())
}

func TestResolveOrchestratorPrefersConfigured(t *testing.T) {
	path, err := ResolveOrchestrator("/opt/bin/build-deploy")
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/build-deploy", path)
}

func TestResolveOrchestratorFromPath(t *testing.T) {
	dir := t.TempDir()
	name := OrchestratorName
	if filepath.Separator == '\\' {
		name += ".exe"
	}
	bin := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", dir)

	path, err := ResolveOrchestrator("")
	require.NoError(t, err)
	assert.Equal(t, bin, path)
}
