package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/log"
)

// Base ref modes for the integration branch.
const (
	BaseRefRemote = "remote"
	BaseRefLocal  = "local"
)

// Refs is the pair of refs compared for one branch.
type Refs struct {
	Branch string // feature branch tip
	Main   string // integration branch
}

// Options controls how RefsFor picks refs.
type Options struct {
	MainBranch string
	Remote     string
	BaseRef    string // BaseRefRemote or BaseRefLocal
}

// Error reports a failed merge-base or diff lookup.
type Error struct {
	Step   string // "merge-base" or "diff"
	Refs   Refs
	Stderr string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "git exited with an error"
	}
	return fmt.Sprintf("%s %s..%s: %s", e.Step, e.Refs.Main, e.Refs.Branch, msg)
}

// RefsFor returns the refs to compare for branch.
func RefsFor(ctx context.Context, gw git.Gateway, branch string, opts Options) Refs {
	refs := Refs{Branch: branch, Main: opts.MainBranch}

	if opts.Remote != "" {
		if opts.BaseRef != BaseRefLocal {
			if remoteMain := opts.Remote + "/" + opts.MainBranch; gw.RefExists(ctx, remoteMain) {
				refs.Main = remoteMain
			}
		}
		if !gw.RefExists(ctx, branch) {
			if remoteBranch := opts.Remote + "/" + branch; gw.RefExists(ctx, remoteBranch) {
				refs.Branch = remoteBranch
			}
		}
	}

	log.FromContext(ctx).Debug("resolved refs", "branch", refs.Branch, "main", refs.Main)
	return refs
}

// ChangedFiles returns the paths added or modified on refs.Branch since it
// forked from refs.Main, in git's output order without duplicates.
func ChangedFiles(ctx context.Context, gw git.Gateway, refs Refs) ([]string, error) {
	base := gw.MergeBase(ctx, refs.Branch, refs.Main)
	if !base.OK() || base.Line() == "" {
		return nil, &Error{Step: "merge-base", Refs: refs, Stderr: base.Stderr}
	}

	diff := gw.DiffNameOnly(ctx, base.Line(), refs.Branch)
	if !diff.OK() {
		return nil, &Error{Step: "diff", Refs: refs, Stderr: diff.Stderr}
	}

	paths := diff.Records()
	seen := make(map[string]bool, len(paths))
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, path)
	}
	return files, nil
}
