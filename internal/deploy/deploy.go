// Package deploy copies the built mod jar into the game's mods directory.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/raoulx24/modwatch/internal/config"
	mfs "github.com/raoulx24/modwatch/internal/fs"
	"github.com/raoulx24/modwatch/internal/logging"
	"github.com/raoulx24/modwatch/internal/snapshot"
)

var (
	// ErrModsDirMissing means the resolved destination does not exist.
	// It is never created automatically.
	ErrModsDirMissing = errors.New("MODS_DIR does not exist")

	// ErrNoArtifact means the build left no matching jar behind.
	ErrNoArtifact = errors.New("no built JAR found, run build first")
)

// Options configures a Deployer. Paths are absolute.
type Options struct {
	LibsDir      string // where the build puts its jars
	DeployConfig string // KEY=value file consulted when MODS_DIR is not in the env
	Pattern      string // e.g. topzurdo-*.jar
	Exclude      string // e.g. *-sources.jar
}

// Result describes one completed deploy.
type Result struct {
	Artifact snapshot.Artifact
	Dest     string
	Removed  []string
}

type Deployer struct {
	opts    Options
	match   glob.Glob
	exclude glob.Glob
	fs      mfs.FS
	log     logging.Logger
	out     io.Writer
}

// New compiles the artifact patterns. out receives user-facing progress lines.
func New(opts Options, filesystem mfs.FS, log logging.Logger, out io.Writer) (*Deployer, error) {
	match, err := glob.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("artifact pattern %q: %w", opts.Pattern, err)
	}
	var exclude glob.Glob
	if opts.Exclude != "" {
		if exclude, err = glob.Compile(opts.Exclude); err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", opts.Exclude, err)
		}
	}
	if filesystem == nil {
		filesystem = mfs.New()
	}
	return &Deployer{
		opts:    opts,
		match:   match,
		exclude: exclude,
		fs:      filesystem,
		log:     log,
		out:     out,
	}, nil
}

// Deploy replaces every matching jar in the mods directory with the newest
// built one. Nothing in the destination is touched until both the
// destination and an artifact have been found.
func (d *Deployer) Deploy(ctx context.Context) (Result, error) {
	modsDir, err := config.ResolveModsDir(d.opts.DeployConfig)
	if err != nil {
		return Result{}, err
	}
	st, err := os.Stat(modsDir)
	if err != nil || !st.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrModsDirMissing, modsDir)
	}

	candidates, err := d.Artifacts()
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("%w in %s", ErrNoArtifact, d.opts.LibsDir)
	}
	jar := newest(candidates)
	if len(candidates) > 1 {
		d.log.Warn("several built jars found, deploying the newest", "selected", jar.Name, "candidates", len(candidates))
	}

	removed, err := d.prune(modsDir)
	if err != nil {
		return Result{Removed: removed}, err
	}

	dest := filepath.Join(modsDir, jar.Name)
	if err := d.fs.CopyFile(ctx, jar.Path, dest); err != nil {
		return Result{Removed: removed}, fmt.Errorf("copying %s: %w", jar.Name, err)
	}
	fmt.Fprintf(d.out, "Deployed: %s -> %s\n", jar.Name, dest)

	return Result{Artifact: jar, Dest: dest, Removed: removed}, nil
}

// Artifacts lists the deployable jars in the libs directory.
// A missing libs directory yields none.
func (d *Deployer) Artifacts() ([]snapshot.Artifact, error) {
	found, err := d.scan(d.opts.LibsDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing build output: %w", err)
	}

	var out []snapshot.Artifact
	for _, a := range found {
		if d.exclude != nil && d.exclude.Match(a.Name) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// scan returns the regular files in dir whose name matches the pattern.
func (d *Deployer) scan(dir string) ([]snapshot.Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var found []snapshot.Artifact
	for _, ent := range entries {
		if !ent.Type().IsRegular() || !d.match.Match(ent.Name()) {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		found = append(found, snapshot.FromFileInfo(filepath.Join(dir, ent.Name()), info))
	}
	return found, nil
}

// newest picks the most recently modified artifact; equal times fall back
// to the greater name so the choice never depends on directory order.
func newest(arts []snapshot.Artifact) snapshot.Artifact {
	sorted := append([]snapshot.Artifact(nil), arts...)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].ModTime.Equal(sorted[j].ModTime) {
			return sorted[i].ModTime.After(sorted[j].ModTime)
		}
		return sorted[i].Name > sorted[j].Name
	})
	return sorted[0]
}
