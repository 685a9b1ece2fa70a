// Package build runs the Gradle build when the mod sources changed since the
// last successful build.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raoulx24/modwatch/internal/hasher"
	"github.com/raoulx24/modwatch/internal/logging"
)

// ErrBuildFailed wraps a non-zero exit of the build command.
var ErrBuildFailed = errors.New("build failed")

type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeBuilt
)

func (o Outcome) String() string {
	if o == OutcomeSkipped {
		return "skipped"
	}
	return "built"
}

// Options configures a Builder. Paths are absolute.
type Options struct {
	Root     string   // working directory of the build command
	Command  []string // e.g. ./gradlew :mod:build
	Artifact string   // must exist for a build to be skipped
}

type Builder struct {
	opts   Options
	runner Runner
	store  *HashStore
	log    logging.Logger
	out    io.Writer
}

// New creates a Builder. out receives the user-facing progress lines.
func New(opts Options, runner Runner, store *HashStore, log logging.Logger, out io.Writer) *Builder {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Builder{opts: opts, runner: runner, store: store, log: log, out: out}
}

// Build runs the build command unless force is false, the stored digest
// equals current and the artifact is present. The digest is stored only
// after the command succeeded.
func (b *Builder) Build(ctx context.Context, current hasher.Digest, force bool) (Outcome, error) {
	previous, err := b.store.Load()
	if err != nil {
		return OutcomeSkipped, err
	}
	b.log.Debug("comparing source digest", "current", current, "previous", previous, "force", force)

	if !force && current == previous && b.artifactExists() {
		fmt.Fprintln(b.out, "No source changes, skip build.")
		return OutcomeSkipped, nil
	}

	fmt.Fprintln(b.out, "Building mod...")
	b.log.Info("running build", "dir", b.opts.Root, "command", b.opts.Command)
	if err := b.runner.Run(ctx, b.opts.Root, b.opts.Command); err != nil {
		fmt.Fprintln(b.out, "Build failed.")
		return OutcomeBuilt, fmt.Errorf("%w: %v", ErrBuildFailed, err)
	}

	if err := b.store.Save(ctx, current); err != nil {
		return OutcomeBuilt, err
	}
	fmt.Fprintln(b.out, "Build OK.")
	return OutcomeBuilt, nil
}

func (b *Builder) artifactExists() bool {
	st, err := os.Stat(b.opts.Artifact)
	return err == nil && st.Mode().IsRegular()
}
