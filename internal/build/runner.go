package build

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Runner executes the external build command.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// ExecRunner runs argv as a blocking subprocess. The build is never killed
// once started, so ctx only guards the start.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty build command")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = orDefault(r.Stdout, os.Stdout)
	cmd.Stderr = orDefault(r.Stderr, os.Stderr)
	return cmd.Run()
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
