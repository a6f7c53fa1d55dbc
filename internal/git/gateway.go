package git

import (
	"context"
	"strings"

	"github.com/raphi011/rebump/internal/cmd"
)

// Gateway issues the git operations the branch workflow needs.
//
// Implementations never return errors for a nonzero exit status; the
// returned Result carries the exit code and captured output. A Gateway is
// not safe for concurrent use against the same working tree.
type Gateway interface {
	// Checkout switches to branch, creating a local tracking branch from the
	// remote when only the remote branch exists.
	Checkout(ctx context.Context, branch string) cmd.Result
	// MergeBase resolves the best common ancestor of a and b.
	MergeBase(ctx context.Context, a, b string) cmd.Result
	// DiffNameOnly lists paths added or modified between from and to as
	// NUL-terminated records.
	DiffNameOnly(ctx context.Context, from, to string) cmd.Result
	// CommitAll stages exactly paths and commits only them with message.
	CommitAll(ctx context.Context, message string, paths []string) cmd.Result
	// Fetch updates refs from remote, limited to refs when given.
	Fetch(ctx context.Context, remote string, refs ...string) cmd.Result
	// Rebase replays the current branch onto onto.
	Rebase(ctx context.Context, onto string) cmd.Result
	// PushForceWithLease pushes branch to remote, refusing if the remote moved.
	PushForceWithLease(ctx context.Context, remote, branch string) cmd.Result
	// CurrentBranch prints the checked-out branch, or the HEAD commit when detached.
	CurrentBranch(ctx context.Context) cmd.Result
	// SwitchTo checks out an existing branch or commit.
	SwitchTo(ctx context.Context, ref string) cmd.Result
	// ShowFile prints the content of path at ref.
	ShowFile(ctx context.Context, ref, path string) cmd.Result
	// ListBranches prints local and remote-tracking branch names, one per line.
	ListBranches(ctx context.Context) cmd.Result
	// RefExists reports whether ref resolves to a commit.
	RefExists(ctx context.Context, ref string) bool
}

// CLI implements Gateway by running the git executable in Dir.
type CLI struct {
	Dir    string // repository root; empty means the process working directory
	Remote string // remote used when checkout has to create a tracking branch
}

// NewCLI returns a git CLI gateway rooted at dir.
func NewCLI(dir, remote string) *CLI {
	return &CLI{Dir: dir, Remote: remote}
}

var _ Gateway = (*CLI)(nil)

func checkoutArgs(branch string) []string { return []string{"checkout", branch} }

func trackingCheckoutArgs(remote, branch string) []string {
	return []string{"checkout", "-b", branch, "--track", remote + "/" + branch}
}

func addArgs(paths []string) []string {
	return append([]string{"add", "--"}, paths...)
}

// commitArgs limits the commit to paths so anything staged beforehand stays
// out of it.
func commitArgs(message string, paths []string) []string {
	args := []string{"commit", "-m", message}
	if len(paths) == 0 {
		return args
	}
	return append(append(args, "--"), paths...)
}

func fetchArgs(remote string, refs []string) []string {
	return append([]string{"fetch", "--quiet", remote}, refs...)
}

func rebaseArgs(onto string) []string { return []string{"rebase", onto} }

func pushArgs(remote, branch string) []string {
	return []string{"push", "--force-with-lease", remote, branch}
}

func switchArgs(ref string) []string { return []string{"checkout", ref} }

func (g *CLI) Checkout(ctx context.Context, branch string) cmd.Result {
	res := execGit(ctx, g.Dir, checkoutArgs(branch)...)
	if res.OK() || g.Remote == "" || !g.RefExists(ctx, g.Remote+"/"+branch) {
		return res
	}
	tracked := execGit(ctx, g.Dir, trackingCheckoutArgs(g.Remote, branch)...)
	if !tracked.OK() {
		tracked.Stderr = strings.TrimSpace(res.Stderr + "\n" + tracked.Stderr)
	}
	return tracked
}

func (g *CLI) MergeBase(ctx context.Context, a, b string) cmd.Result {
	return execGit(ctx, g.Dir, "merge-base", a, b)
}

func (g *CLI) DiffNameOnly(ctx context.Context, from, to string) cmd.Result {
	return execGit(ctx, g.Dir, "diff", "--name-only", "-z", "--no-renames", "--diff-filter=AM", from, to)
}

func (g *CLI) CommitAll(ctx context.Context, message string, paths []string) cmd.Result {
	if len(paths) > 0 {
		if res := execGit(ctx, g.Dir, addArgs(paths)...); !res.OK() {
			return res
		}
	}
	return execGit(ctx, g.Dir, commitArgs(message, paths)...)
}

func (g *CLI) Fetch(ctx context.Context, remote string, refs ...string) cmd.Result {
	return execGit(ctx, g.Dir, fetchArgs(remote, refs)...)
}

func (g *CLI) Rebase(ctx context.Context, onto string) cmd.Result {
	return execGit(ctx, g.Dir, rebaseArgs(onto)...)
}

func (g *CLI) PushForceWithLease(ctx context.Context, remote, branch string) cmd.Result {
	return execGit(ctx, g.Dir, pushArgs(remote, branch)...)
}

func (g *CLI) CurrentBranch(ctx context.Context) cmd.Result {
	res := execGit(ctx, g.Dir, "branch", "--show-current")
	if !res.OK() || res.Line() != "" {
		return res
	}
	// Detached HEAD: return the commit so callers can switch back to it.
	return execGit(ctx, g.Dir, "rev-parse", "HEAD")
}

func (g *CLI) SwitchTo(ctx context.Context, ref string) cmd.Result {
	return execGit(ctx, g.Dir, switchArgs(ref)...)
}

func (g *CLI) ShowFile(ctx context.Context, ref, path string) cmd.Result {
	return execGit(ctx, g.Dir, "show", ref+":"+path)
}

func (g *CLI) ListBranches(ctx context.Context) cmd.Result {
	return execGit(ctx, g.Dir, "for-each-ref", "--format=%(refname:short)", "refs/heads", "refs/remotes")
}

func (g *CLI) RefExists(ctx context.Context, ref string) bool {
	return execGit(ctx, g.Dir, "rev-parse", "--verify", "--quiet", ref+"^{commit}").OK()
}

// RemoteURL returns the fetch URL of remote.
func (g *CLI) RemoteURL(ctx context.Context, remote string) cmd.Result {
	return execGit(ctx, g.Dir, "remote", "get-url", remote)
}
