// Package pipeline is the build-deploy orchestrator: hash the sources, build
// when they changed, then deploy the jar.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/raoulx24/modwatch/internal/build"
	"github.com/raoulx24/modwatch/internal/config"
	"github.com/raoulx24/modwatch/internal/deploy"
	mfs "github.com/raoulx24/modwatch/internal/fs"
	"github.com/raoulx24/modwatch/internal/hasher"
	"github.com/raoulx24/modwatch/internal/logging"
)

// ErrLocked means another build-deploy holds the project lock.
var ErrLocked = errors.New("another build-deploy is already running")

type Options struct {
	Force     bool // build even if the sources are unchanged
	BuildOnly bool // stop after the build
	HashOnly  bool // print the source digest and stop
}

type Pipeline struct {
	cfg      *config.Config
	log      logging.Logger
	out      io.Writer
	fs       mfs.FS
	builder  *build.Builder
	deployer *deploy.Deployer
}

// New wires the pipeline for cfg. A nil runner executes the real build command.
func New(cfg *config.Config, runner build.Runner, log logging.Logger, out io.Writer) (*Pipeline, error) {
	filesystem := mfs.New()

	b := build.New(build.Options{
		Root:     cfg.Root,
		Command:  cfg.Build.Command,
		Artifact: cfg.ArtifactPath(),
	}, runner, build.NewHashStore(cfg.HashFile(), filesystem), log, out)

	d, err := deploy.New(deploy.Options{
		LibsDir:      cfg.LibsDir(),
		DeployConfig: cfg.DeployConfig(),
		Pattern:      cfg.Deploy.Pattern,
		Exclude:      cfg.Deploy.Exclude,
	}, filesystem, log, out)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:      cfg,
		log:      log,
		out:      out,
		fs:       filesystem,
		builder:  b,
		deployer: d,
	}, nil
}

// Run executes one orchestration. Only one run per project may hold the
// lock at a time; the stored hash file has no other protection.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	digest, err := hasher.Hash(p.cfg.SourceDir(), p.cfg.Source.Extensions)
	if err != nil {
		return err
	}
	if opts.HashOnly {
		fmt.Fprintln(p.out, digest)
		return nil
	}

	unlock, err := p.lock()
	if err != nil {
		return err
	}
	defer unlock()

	outcome, err := p.builder.Build(ctx, digest, opts.Force)
	if err != nil {
		return err
	}
	p.log.Debug("build finished", "outcome", outcome, "digest", digest)

	if opts.BuildOnly {
		return nil
	}

	res, err := p.deployer.Deploy(ctx)
	if err != nil {
		return err
	}
	p.log.Info("deployed", "artifact", res.Artifact.Name, "dest", res.Dest, "removed", len(res.Removed))
	return nil
}

func (p *Pipeline) lock() (func(), error) {
	path := p.cfg.LockFile()
	if err := p.fs.MkdirAll(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("creating lock dir: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			p.log.Warn("releasing lock failed", "path", path, "error", err)
		}
	}, nil
}
