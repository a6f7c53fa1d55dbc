package config

// defaultConfig is the template for rebump config init
const defaultConfig = `# rebump configuration
# Location: ~/.config/rebump/config.toml (override with $REBUMP_CONFIG)

# Integration branch the feature branches were cut from
main_branch = "main"

# Remote to fetch from and push to
remote = "origin"

# Compare branches against "remote" (<remote>/<main_branch>) or "local" (<main_branch>)
base_ref = "remote"

# Push rebased branches with --force-with-lease
push = true

# Commit message template: {old}, {new} and {branch} are replaced
commit_message = "Update {old} → {new} in branch files"

# Hosting service queried by --open-prs: "github" (gh CLI) or "gitlab" (glab CLI).
# Leave unset to detect it from the remote URL.
# forge = "github"

[prompt]
# Ask for confirmation before mutating branches (dry runs never ask)
confirm = true

[diff]
# Syntax highlighting for dry-run diffs
style = "monokai"
color = true

# Hooks - run shell commands after each branch finished
# Use --hook=name to run a specific hook, --no-hook to skip all hooks
#
# Hooks with "on" run automatically for matching branch outcomes.
# Hooks without "on" only run when explicitly called with --hook=name.
#
# [hooks.ci]
# command = "gh workflow run ci.yml --ref {branch}"
# description = "Trigger CI for the updated branch"
# on = ["success"]
#
# [hooks.report]
# command = "echo {branch} {status} {reason} >> rebump.log"
# on = ["all"]
#
# Available "on" values: "success", "failure", "all"
#
# Hooks run in the repository root after rebump switched back to the
# branch it started on. Dry runs print the hook command instead.
#
# Available placeholders (shell-quoted):
#   {branch}  - branch name
#   {old}     - value that was replaced
#   {new}     - replacement value
#   {status}  - succeeded or failed
#   {reason}  - failure reason (empty on success)
#   {repo}    - repository folder name
#   {path}    - repository root
#   {key}     - value of --arg key=value ({key:-default}, {key:raw})
`

// DefaultConfig returns the default global configuration template content.
func DefaultConfig() string {
	return defaultConfig
}
