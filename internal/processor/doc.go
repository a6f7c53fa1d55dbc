// Package processor drives one branch at a time through the update workflow.
//
// # State Machine
//
// Each branch moves through these steps in order:
//
//	Checkout -> Resolve -> Rewrite -> Commit -> Rebase -> Push -> Done
//
// Any step can end the branch as Failed. Resolve ends the branch early when
// the branch changed no files, and Commit is skipped when no file was
// updated. A failed branch never stops the run.
//
// After every branch the processor switches back to the branch (or detached
// commit) that was checked out when Run started.
//
// # Dry Run
//
// With Options.DryRun the processor expects a git.DryRun gateway. Checkout
// is recorded rather than run, so files are read from the branch ref with
// git show and rewritten in memory. A branch missing locally and on the
// remote still fails at checkout. The recorded command lines are attached
// to each Job.
package processor
