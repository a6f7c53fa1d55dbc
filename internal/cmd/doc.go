// Package cmd runs external commands and captures their outcome.
//
// Unlike [os/exec.Cmd.Run], [Exec] never turns a nonzero exit status into a
// Go error. Every invocation produces a [Result] holding the exit code and
// both output streams, and callers decide what a failure means.
//
// # Usage
//
//	res := cmd.Exec(ctx, repoRoot, "git", "merge-base", "feat-a", "origin/main")
//	if !res.OK() {
//	    return fmt.Errorf("merge-base: %w", res.Err())
//	}
//	base := res.Line()
//
// # Design Notes
//
// rebump shells out to the git CLI rather than using a Go git library for
// everything that mutates a repository. This keeps behaviour identical to
// what the user would get typing the commands themselves (hooks, credential
// helpers, SSH config, signing).
package cmd
