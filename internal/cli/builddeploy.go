package cli

import (
	"github.com/spf13/cobra"

	"github.com/raoulx24/modwatch/internal/build"
	"github.com/raoulx24/modwatch/internal/pipeline"
)

// NewBuildDeployCommand returns the orchestrator command. A nil runner
// executes the real Gradle wrapper.
func NewBuildDeployCommand(runner build.Runner) *cobra.Command {
	var (
		g    globalFlags
		opts pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "build-deploy",
		Short: "Build the mod if its sources changed, then copy the jar to MODS_DIR",
		Long: `Computes a SHA-256 of the mod sources. When it differs from the last
successful build (or --force is given) the Gradle build runs. The jar is
then copied into MODS_DIR, taken from the environment or scripts/deploy.config,
after removing older topzurdo-*.jar files there.`,
		Example: `  build-deploy               # build if sources changed, then deploy
  build-deploy --force       # always build and deploy
  build-deploy --build-only  # only build
  build-deploy --hash-only   # print the current source hash`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			p, err := pipeline.New(cfg, runnerOrExec(runner, cmd), log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return p.Run(cmd.Context(), opts)
		},
	}

	g.register(cmd)
	cmd.Flags().BoolVar(&opts.Force, "force", false, "build even if the sources are unchanged")
	cmd.Flags().BoolVar(&opts.BuildOnly, "build-only", false, "skip the deploy step")
	cmd.Flags().BoolVar(&opts.HashOnly, "hash-only", false, "print the source hash and exit")
	return cmd
}

func runnerOrExec(r build.Runner, cmd *cobra.Command) build.Runner {
	if r != nil {
		return r
	}
	return build.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
}
