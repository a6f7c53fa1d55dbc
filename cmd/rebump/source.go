package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/rebump/internal/branches"
	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/forge"
	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/log"
)

// sourceFlags select the branches a command works on.
type sourceFlags struct {
	branches     []string
	branchesFile string
	openPRs      bool
	author       string
	label        string
	drafts       bool
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&s.branches, "branches", "b", nil, "Branches to process (repeatable, comma-separated)")
	cmd.Flags().StringVarP(&s.branchesFile, "branches-file", "f", "", "JSON or TOML file listing the branches")
	cmd.Flags().BoolVar(&s.openPRs, "open-prs", false, "Use the branches of all open PRs targeting the main branch")
	cmd.Flags().StringVar(&s.author, "author", "", "With --open-prs: only PRs by this author")
	cmd.Flags().StringVar(&s.label, "label", "", "With --open-prs: only PRs with this label")
	cmd.Flags().BoolVar(&s.drafts, "drafts", false, "With --open-prs: include draft PRs")

	cmd.MarkFlagsMutuallyExclusive("branches", "branches-file", "open-prs")
	cmd.MarkFlagFilename("branches-file", "json", "toml")
	cmd.RegisterFlagCompletionFunc("branches", completeBranches)
}

// errForgeFilter is returned when PR filters are given without --open-prs.
var errForgeFilter = errors.New("--author, --label and --drafts require --open-prs")

// load returns the branch names from the flags, positional args or the
// open PRs of the repository's forge.
func (s *sourceFlags) load(ctx context.Context, rc *repoContext, cfg *config.Config, args []string) ([]string, error) {
	if !s.openPRs {
		if s.author != "" || s.label != "" || s.drafts {
			return nil, errForgeFilter
		}
		return branches.Load(branches.Options{
			Names: append(append([]string(nil), s.branches...), args...),
			File:  s.branchesFile,
		})
	}

	if len(args) > 0 {
		return nil, fmt.Errorf("--open-prs cannot be combined with branch arguments")
	}
	if cfg.Remote == "" {
		return nil, fmt.Errorf("--open-prs needs a remote")
	}

	url := git.NewCLI(rc.Repo.Root, cfg.Remote).RemoteURL(ctx, cfg.Remote)
	if !url.OK() {
		return nil, fmt.Errorf("remote %s: %w", cfg.Remote, url.Err())
	}

	f := forge.Detect(url.Line(), cfg.Forge)
	if err := f.Check(ctx); err != nil {
		return nil, err
	}
	prs, err := f.ListOpenPRs(ctx, url.Line(), forge.ListOptions{
		Base:   cfg.MainBranch,
		Author: s.author,
		Label:  s.label,
		Drafts: s.drafts,
	})
	if err != nil {
		return nil, err
	}

	l := log.FromContext(ctx)
	for _, pr := range prs {
		l.Debug("open pr", "forge", f.Name(), "number", pr.Number, "branch", pr.Branch, "author", pr.Author)
	}

	names := forge.Branches(prs)
	if len(names) == 0 {
		return nil, fmt.Errorf("no open PRs target %s", cfg.MainBranch)
	}
	return names, nil
}
