// Package gittest provides a scripted git.Gateway for tests.
package gittest

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/rebump/internal/cmd"
	"github.com/raphi011/rebump/internal/git"
)

// Fake is a git.Gateway that answers from a script and records every call.
//
// Calls are identified by a short key such as "checkout feat-a" or
// "rebase origin/main". Unscripted calls succeed with empty output.
type Fake struct {
	Calls   []string
	Results map[string]cmd.Result
	Refs    map[string]bool // refs reported by RefExists
	Current string          // output of CurrentBranch
}

// New returns an empty Fake whose current branch is "main".
func New() *Fake {
	return &Fake{
		Results: make(map[string]cmd.Result),
		Refs:    make(map[string]bool),
		Current: "main",
	}
}

var _ git.Gateway = (*Fake)(nil)

// Stdout scripts a successful call that prints out.
func (f *Fake) Stdout(call, out string) *Fake {
	f.Results[call] = cmd.Result{Stdout: out}
	return f
}

// Fail scripts a call to exit 1 with stderr.
func (f *Fake) Fail(call, stderr string) *Fake {
	f.Results[call] = cmd.Result{ExitCode: 1, Stderr: stderr}
	return f
}

// Called reports whether call was made.
func (f *Fake) Called(call string) bool {
	for _, c := range f.Calls {
		if c == call {
			return true
		}
	}
	return false
}

// CalledPrefix returns the calls starting with prefix.
func (f *Fake) CalledPrefix(prefix string) []string {
	var out []string
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) respond(call string) cmd.Result {
	f.Calls = append(f.Calls, call)
	res, ok := f.Results[call]
	if !ok {
		res = cmd.Result{}
	}
	res.Args = append([]string{"git"}, strings.Fields(call)...)
	return res
}

func (f *Fake) Checkout(_ context.Context, branch string) cmd.Result {
	res := f.respond("checkout " + branch)
	if res.OK() {
		f.Current = branch
	}
	return res
}

func (f *Fake) MergeBase(_ context.Context, a, b string) cmd.Result {
	return f.respond(fmt.Sprintf("merge-base %s %s", a, b))
}

func (f *Fake) DiffNameOnly(_ context.Context, from, to string) cmd.Result {
	return f.respond(fmt.Sprintf("diff %s %s", from, to))
}

func (f *Fake) CommitAll(_ context.Context, message string, paths []string) cmd.Result {
	return f.respond(fmt.Sprintf("commit %s -- %s", message, strings.Join(paths, " ")))
}

func (f *Fake) Fetch(_ context.Context, remote string, refs ...string) cmd.Result {
	return f.respond(strings.TrimSpace("fetch " + remote + " " + strings.Join(refs, " ")))
}

func (f *Fake) Rebase(_ context.Context, onto string) cmd.Result {
	return f.respond("rebase " + onto)
}

func (f *Fake) PushForceWithLease(_ context.Context, remote, branch string) cmd.Result {
	return f.respond(fmt.Sprintf("push %s %s", remote, branch))
}

func (f *Fake) CurrentBranch(_ context.Context) cmd.Result {
	res := f.respond("current-branch")
	if res.OK() && res.Stdout == "" {
		res.Stdout = f.Current + "\n"
	}
	return res
}

func (f *Fake) SwitchTo(_ context.Context, ref string) cmd.Result {
	res := f.respond("switch " + ref)
	if res.OK() {
		f.Current = ref
	}
	return res
}

func (f *Fake) ShowFile(_ context.Context, ref, path string) cmd.Result {
	return f.respond(fmt.Sprintf("show %s:%s", ref, path))
}

func (f *Fake) ListBranches(_ context.Context) cmd.Result {
	return f.respond("list-branches")
}

func (f *Fake) RefExists(_ context.Context, ref string) bool {
	return f.Refs[ref]
}
