package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/format"
	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/hooks"
	"github.com/raphi011/rebump/internal/log"
	"github.com/raphi011/rebump/internal/output"
	"github.com/raphi011/rebump/internal/processor"
	"github.com/raphi011/rebump/internal/report"
	"github.com/raphi011/rebump/internal/rewrite"
	"github.com/raphi011/rebump/internal/storage"
	"github.com/raphi011/rebump/internal/ui/prompt"
	"github.com/raphi011/rebump/internal/ui/styles"
)

type runFlags struct {
	src        sourceFlags
	oldValue   string
	newValue   string
	mainBranch string
	remote     string
	baseRef    string
	message    string
	dryRun     bool
	yes        bool
	noPush     bool
	diff       bool
	json       bool
	hook       string
	noHook     bool
	hookArgs   []string
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:     "run [branch...]",
		Short:   "Replace a value in each branch's changed files, rebase and push",
		GroupID: GroupCore,
		Long: `Replace a value in the files each branch changed, then rebase and push.

For every branch, in order:
  1. check it out
  2. list the files changed since it forked from the main branch
  3. replace --old-value with --new-value in those files only
  4. commit the updated files
  5. fetch and rebase onto the main branch
  6. push with --force-with-lease

A value is replaced only where it stands alone: as a whitespace or
punctuation separated token, inside matching quotes, or right after = or :.
"1.2" is replaced in "version = 1.2" but not in "1.23" or "v1.2".

A failing branch is reported and the run continues with the next one.
Rebase conflicts are left in place for manual resolution.

Hooks configured with on = ["success"], ["failure"] or ["all"] run after
each matching branch; see "rebump config init -s" for the syntax.`,
		Example: `  rebump run -b feat-a -b feat-b --old-value 1.2 --new-value 1.3
  rebump run feat-a feat-b --old-value 1.2 --new-value 1.3 --dry-run
  rebump run -f branches.json --old-value staging --new-value production -y
  rebump run -f branches.toml --old-value 1.2 --new-value 1.3 --no-push --json
  rebump run --open-prs --label release --old-value 1.2 --new-value 1.3
  rebump run feat-a --old-value 1.2 --new-value 1.3 --hook notify -a channel=#releases`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, f, args)
		},
	}

	f.src.register(cmd)
	cmd.Flags().StringVar(&f.oldValue, "old-value", "", "Value to replace (e.g. 1.2)")
	cmd.Flags().StringVar(&f.newValue, "new-value", "", "Replacement value (e.g. 1.3)")
	cmd.Flags().StringVarP(&f.mainBranch, "main-branch", "m", "", "Main branch name (default from config, else main)")
	cmd.Flags().StringVar(&f.remote, "remote", "", "Remote to fetch from and push to (default from config, else origin)")
	cmd.Flags().StringVar(&f.baseRef, "base-ref", "", "Compare against the remote or local main branch: remote, local")
	cmd.Flags().StringVar(&f.message, "message", "", "Commit message template ({old}, {new}, {branch})")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "Show what would be done without changing anything")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&f.noPush, "no-push", false, "Rebase but do not push")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "Print a diff of every updated file (always on with --dry-run)")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print a JSON summary to stdout")
	cmd.Flags().StringVar(&f.hook, "hook", "", "Run only this hook after every branch")
	cmd.Flags().BoolVar(&f.noHook, "no-hook", false, "Skip all hooks")
	cmd.Flags().StringArrayVarP(&f.hookArgs, "arg", "a", nil, "Set a hook placeholder (key=value, repeatable)")

	cmd.MarkFlagRequired("old-value")
	cmd.MarkFlagRequired("new-value")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hook")

	cmd.RegisterFlagCompletionFunc("main-branch", completeBranches)
	cmd.RegisterFlagCompletionFunc("hook", completeHooks)
	cmd.RegisterFlagCompletionFunc("base-ref", cobra.FixedCompletions(config.ValidBaseRefs, cobra.ShellCompDirectiveNoFileComp))
	cmd.ValidArgsFunction = completeBranches

	return cmd
}

func runRun(cmd *cobra.Command, f runFlags, args []string) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	sub := rewrite.Substitution{Old: f.oldValue, New: f.newValue}
	if err := sub.Validate(); err != nil {
		return err
	}

	rc, err := openRepo(ctx)
	if err != nil {
		return err
	}
	cfg, err := applyRunFlags(cmd, f, rc.Cfg)
	if err != nil {
		return err
	}

	names, err := f.src.load(ctx, rc, cfg, args)
	if err != nil {
		return err
	}

	hookEnv, err := hooks.ParseEnv(f.hookArgs)
	if err != nil {
		return err
	}
	hookObs, err := hooks.NewObserver(cfg.Hooks, f.hook, f.noHook, hooks.Context{
		Old:    sub.Old,
		New:    sub.New,
		Repo:   filepath.Base(rc.Repo.Root),
		Path:   rc.Repo.Root,
		Env:    hookEnv,
		DryRun: f.dryRun,
	}, l.Progress())
	if err != nil {
		return err
	}

	if !f.dryRun {
		lock := storage.NewFileLock(rc.Repo.LockPath())
		if err := lock.TryLock(); err != nil {
			if errors.Is(err, storage.ErrLocked) {
				return fmt.Errorf("another rebump run is in progress in %s", rc.Repo.Root)
			}
			return fmt.Errorf("lock repository: %w", err)
		}
		defer lock.Unlock()
	}

	l.Printf("Branches to process: %d\n", len(names))
	for i, name := range names {
		l.Printf("  %d. %s\n", i+1, name)
	}
	l.Debug("settings", "main", cfg.MainBranch, "remote", cfg.Remote, "base_ref", cfg.BaseRef, "push", cfg.Push, "dry_run", f.dryRun)

	if !f.dryRun && !f.yes && cfg.Prompt.Confirm {
		l.Println()
		res, err := prompt.Confirm(fmt.Sprintf("Proceed with updating %d branch(es)?", len(names)), prompt.Options{
			In:  cmd.InOrStdin(),
			Out: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		if !res.Confirmed {
			l.Println("Aborted")
			return nil
		}
	}

	var gw git.Gateway = git.NewCLI(rc.Repo.Root, cfg.Remote)
	if f.dryRun {
		gw = git.NewDryRun(gw, cfg.Remote, "")
	}

	profile := styles.Detect(cmd.ErrOrStderr())
	styles.SetColor(styles.HasColor(profile))
	if !cfg.Diff.Color {
		profile = colorprofile.NoTTY
	}

	proc := processor.New(gw, rc.Repo.Root, processor.Options{
		Main:            cfg.MainBranch,
		Remote:          cfg.Remote,
		BaseRef:         cfg.BaseRef,
		Push:            cfg.Push,
		DryRun:          f.dryRun,
		MessageTemplate: cfg.CommitMessage,
		Substitution:    sub,
	})
	reporter := report.New(l.Progress(), report.Options{
		DryRun:       f.dryRun,
		Substitution: sub,
		ShowDiff:     f.diff || f.dryRun,
		DiffStyle:    cfg.Diff.Style,
		Profile:      profile,
	})
	proc.Observer = reporter
	if !hookObs.Empty() {
		proc.Observer = processor.Observers{reporter, hookObs}
	}

	sum := proc.Run(ctx, names)

	if ctx.Err() != nil {
		l.Println()
		l.Println("Interrupted by user")
	}
	if len(sum.Commands) > 0 {
		l.Println()
		l.Printf("Before the first branch, would run:\n")
		for _, c := range sum.Commands {
			l.Printf("    %s\n", styles.Command(c))
		}
	}

	l.Println()
	if sum.Total > 1 {
		l.Printf("%s", report.Table(sum))
		l.Println()
	}
	l.Println(styles.Bold.Render(report.Summary(sum)))

	if f.json {
		if err := out.JSON(report.NewJSON(sum, f.dryRun)); err != nil {
			return err
		}
	}

	if !sum.OK() {
		return errBranchesFailed
	}
	return nil
}

// applyRunFlags layers command-line flags over the effective config.
func applyRunFlags(cmd *cobra.Command, f runFlags, base *config.Config) (*config.Config, error) {
	cfg := *base
	flags := cmd.Flags()

	if flags.Changed("main-branch") {
		if strings.TrimSpace(f.mainBranch) == "" {
			return nil, fmt.Errorf("--main-branch must not be empty")
		}
		cfg.MainBranch = f.mainBranch
	}
	if flags.Changed("remote") {
		cfg.Remote = f.remote
	}
	if flags.Changed("base-ref") {
		if err := config.ValidateBaseRef(f.baseRef); err != nil {
			return nil, err
		}
		cfg.BaseRef = f.baseRef
	}
	if flags.Changed("message") {
		if err := format.ValidateMessage(f.message); err != nil {
			return nil, fmt.Errorf("--message: %w", err)
		}
		cfg.CommitMessage = f.message
	}
	if f.noPush {
		cfg.Push = false
	}
	return &cfg, nil
}
