// Package config handles loading and validation of rebump configuration.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags
//   - Per-repo .rebump.toml at the repository root
//   - Global config at ~/.config/rebump/config.toml (or $REBUMP_CONFIG)
//   - Default values
//
// # Key Settings
//
//   - main_branch: integration branch the feature branches diverged from (default: "main")
//   - remote: remote to fetch from and push to (default: "origin")
//   - base_ref: "remote" to compare against <remote>/<main_branch>, "local" for the local branch
//   - push: push rebased branches with --force-with-lease (default: true)
//   - commit_message: template with {old}, {new} and {branch} placeholders
//
// # Sections
//
//	[prompt]
//	confirm = true       # ask before mutating anything
//
//	[diff]
//	style = "monokai"    # chroma style for dry-run diffs
//	color = true         # set false to never highlight
package config
