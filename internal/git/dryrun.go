package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/raphi011/rebump/internal/cmd"
)

// DryRun wraps a Gateway so that mutating calls only record what they would
// have run. Checkout, SwitchTo, Fetch, CommitAll, Rebase and
// PushForceWithLease are recorded; everything else is delegated.
//
// Checkout still fails for a branch that exists neither locally nor on the
// remote, so a dry run reports the same checkout failures a real run would.
type DryRun struct {
	Gateway
	remote   string
	dir      string
	recorded []string
}

// NewDryRun returns a dry-run decorator around gw. remote is where Checkout
// looks for branches missing locally; dir is only used to render the
// recorded command lines.
func NewDryRun(gw Gateway, remote, dir string) *DryRun {
	return &DryRun{Gateway: gw, remote: remote, dir: dir}
}

var _ Gateway = (*DryRun)(nil)

// Recorded returns every command line recorded so far, in call order.
func (d *DryRun) Recorded() []string {
	return append([]string(nil), d.recorded...)
}

// Drain returns the recorded command lines and clears the record.
func (d *DryRun) Drain() []string {
	out := d.recorded
	d.recorded = nil
	return out
}

func (d *DryRun) record(args ...[]string) cmd.Result {
	var last []string
	for _, a := range args {
		last = append([]string{"git"}, gitArgs(d.dir, a)...)
		d.recorded = append(d.recorded, CommandLine(last))
	}
	return cmd.Result{Args: last}
}

func (d *DryRun) Checkout(ctx context.Context, branch string) cmd.Result {
	if !d.RefExists(ctx, branch) && (d.remote == "" || !d.RefExists(ctx, d.remote+"/"+branch)) {
		return cmd.Result{
			Args:     append([]string{"git"}, gitArgs(d.dir, checkoutArgs(branch))...),
			ExitCode: 1,
			Stderr:   fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", branch),
		}
	}
	return d.record(checkoutArgs(branch))
}

func (d *DryRun) CommitAll(_ context.Context, message string, paths []string) cmd.Result {
	if len(paths) == 0 {
		return d.record(commitArgs(message, nil))
	}
	return d.record(addArgs(paths), commitArgs(message, paths))
}

func (d *DryRun) Fetch(_ context.Context, remote string, refs ...string) cmd.Result {
	return d.record(fetchArgs(remote, refs))
}

func (d *DryRun) Rebase(_ context.Context, onto string) cmd.Result {
	return d.record(rebaseArgs(onto))
}

func (d *DryRun) PushForceWithLease(_ context.Context, remote, branch string) cmd.Result {
	return d.record(pushArgs(remote, branch))
}

func (d *DryRun) SwitchTo(_ context.Context, ref string) cmd.Result {
	return d.record(switchArgs(ref))
}

// CommandLine renders args the way a user would type them in a shell,
// quoting arguments that contain whitespace or quotes.
func CommandLine(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			parts[i] = strconv.Quote(a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
