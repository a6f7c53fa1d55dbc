// Package hooks runs user-defined shell commands after each branch finished.
//
// Hooks are configured in [hooks.NAME] sections and are useful for
// triggering CI, posting notifications or appending to a log once a branch
// was updated or failed.
//
// # Hook Selection
//
// Hooks can run automatically or manually:
//
//   - Automatic: hooks whose "on" list contains the branch outcome
//     ("success" or "failure", or "all") run after every matching branch
//   - Manual: --hook=name runs that hook after every branch regardless of
//     "on"; --no-hook skips all hooks
//
// Example config:
//
//	[hooks.ci]
//	command = "gh workflow run ci.yml --ref {branch}"
//	on = ["success"]
//
//	[hooks.log]
//	command = "echo {branch} {status} >> rebump.log"
//	# no "on" - only runs via --hook=log
//
// # Placeholder Substitution
//
// Static placeholders:
//
//   - {branch}: branch name
//   - {old}, {new}: the substituted values
//   - {status}: succeeded or failed
//   - {reason}: failure reason, empty on success
//   - {repo}: repository folder name
//   - {path}: repository root
//
// Custom variables via --arg key=value:
//
//   - {key}: value from --arg key=value
//   - {key:-default}: value with fallback if not provided
//   - {key:raw}: value without shell quoting
//
// # Execution
//
// Hooks run through sh -c in the repository root. A failing hook is reported
// as a warning and never changes the outcome of the branch.
package hooks
