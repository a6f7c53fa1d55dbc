package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/log"
	"github.com/raphi011/rebump/internal/output"
)

// errBranchesFailed makes the process exit 1 after the summary was printed.
var errBranchesFailed = errors.New("one or more branches failed")

// errNotReady makes the process exit 1 after doctor printed its issues.
var errNotReady = errors.New("repository is not ready")

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

type globalFlags struct {
	verbose bool
	quiet   bool
	dir     string
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:   "rebump",
		Short: "Replace a value across feature branches and rebase them",
		Long: `rebump updates a list of feature branches in one go.

For every branch it finds the files the branch changed since it forked from
the main branch, replaces the old value with the new one in those files only,
commits, rebases onto the latest main branch and pushes with
--force-with-lease.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			ctx = log.WithLogger(ctx, log.New(cmd.ErrOrStderr(), g.verbose, g.quiet))
			ctx = output.WithPrinter(ctx, cmd.OutOrStdout())
			ctx = withWorkDir(ctx, g.dir)

			cfg, err := config.Load()
			if err != nil {
				// A broken config file must not lock the user out of fixing it.
				if !toleratesBrokenConfig(cmd) {
					return err
				}
				log.FromContext(ctx).Printf("Warning: %v\n", err)
			}
			ctx = config.WithConfig(ctx, &cfg)
			cmd.SetContext(ctx)

			// Skip git check for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" || toleratesBrokenConfig(cmd) {
				return nil
			}
			return git.CheckGit()
		},
		// Run is not set - shows help when no subcommand provided
	}

	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Show git commands being executed")
	cmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "Suppress all progress output")
	cmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", "", "Run as if started in `path`")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newFilesCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// toleratesBrokenConfig reports whether cmd runs without a valid config or
// git, so the user can inspect and repair both.
func toleratesBrokenConfig(cmd *cobra.Command) bool {
	return cmd.Name() == "doctor" || isConfigCmd(cmd)
}

func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, errBranchesFailed) || errors.Is(err, errNotReady) {
			return 1
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'rebump -h' for help")
		return 1
	}
	return 0
}
