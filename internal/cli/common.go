// Package cli holds the cobra commands behind the build-deploy and
// watch-build-deploy binaries.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raoulx24/modwatch/internal/config"
	"github.com/raoulx24/modwatch/internal/logging"
)

type globalFlags struct {
	root       string
	configPath string
	logLevel   string
}

func (g *globalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.root, "root", ".", "project root (contains mod/ and scripts/)")
	cmd.Flags().StringVar(&g.configPath, "config", "", "YAML config file (default <root>/"+config.FileName+" if present)")
	cmd.Flags().StringVar(&g.logLevel, "log-level", "", "override logging.level from the config")
}

// load reads the config and builds the logger it describes.
func (g *globalFlags) load() (*config.Config, logging.ZapLogger, error) {
	cfg, err := config.Load(g.root, g.configPath)
	if err != nil {
		return nil, logging.ZapLogger{}, err
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, logging.ZapLogger{}, err
	}
	return cfg, log, nil
}

// childArgs builds the build-deploy invocation for the project at root.
// The child runs with root as its working directory, so the config path is
// made absolute against the watcher's own working directory first.
func (g *globalFlags) childArgs(orchestrator, root string) ([]string, error) {
	argv := []string{orchestrator, "--root", root}
	if g.configPath != "" {
		abs, err := filepath.Abs(g.configPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		argv = append(argv, "--config", abs)
	}
	if g.logLevel != "" {
		argv = append(argv, "--log-level", g.logLevel)
	}
	return argv, nil
}
