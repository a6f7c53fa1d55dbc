package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/doctor"
	"github.com/raphi011/rebump/internal/git"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Check that the repository is ready for a run",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Check that the repository is ready for a run.

Checks:
- git is installed
- the global and local config files load
- the configured remote exists
- the main branch ref the branches are compared against exists
- no rebase is left in progress
- no other rebump run holds the repository lock
- the forge CLI used by --open-prs is installed and logged in

With --fix, a missing remote main branch ref is fetched. Everything else is
reported with a hint for fixing it by hand.

Exits 1 when an issue would make a run fail.`,
		Example: `  rebump doctor          # Check for issues
  rebump doctor --fix    # Fetch what is missing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env := &doctor.Env{Cfg: config.FromContext(ctx)}
			if _, err := config.Load(); err != nil {
				env.ConfigErr = err
			}

			dir, err := workDirFromContext(ctx)
			if err != nil {
				return err
			}
			repo, err := git.Discover(dir)
			switch {
			case errors.Is(err, git.ErrNotRepository):
			case err != nil:
				return err
			default:
				env.Repo = repo
				local, err := config.LoadLocal(repo.Root)
				if err != nil && env.ConfigErr == nil {
					env.ConfigErr = err
				}
				env.Cfg = config.MergeLocal(env.Cfg, local)
				env.Git = git.NewCLI(repo.Root, env.Cfg.Remote)
			}

			if err := doctor.Run(ctx, env, fix, cmd.OutOrStdout()); err != nil {
				if errors.Is(err, doctor.ErrUnhealthy) {
					return errNotReady
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Fetch the missing main branch ref")

	return cmd
}
