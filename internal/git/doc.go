// Package git is rebump's gateway to the version-control system.
//
// Every operation that reads or mutates a repository goes through the git
// CLI via [CLI], so hooks, credential helpers and user configuration behave
// exactly as they do on the command line. Repository discovery uses go-git
// because it only needs to read .git metadata.
//
// # Gateway
//
// [Gateway] exposes one method per git action the branch workflow needs:
//
//   - [Gateway.Checkout], [Gateway.SwitchTo], [Gateway.CurrentBranch]
//   - [Gateway.MergeBase], [Gateway.DiffNameOnly], [Gateway.ShowFile]
//   - [Gateway.CommitAll], [Gateway.Fetch], [Gateway.Rebase], [Gateway.PushForceWithLease]
//
// Methods return a [cmd.Result] and never an error for a nonzero exit.
// Callers decide what a failure means for the branch they are processing.
//
// # Dry Run
//
// [DryRun] wraps a Gateway and turns every mutating call into a no-op that
// records the command line it would have run. Read-only calls pass through.
// Checkout of a branch unknown locally and on the remote still fails.
package git
