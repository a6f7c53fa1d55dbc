// Package forge lists open pull requests from git hosting services.
//
// GitHub is queried through the gh CLI and GitLab through the glab CLI, so
// authentication and host configuration are whatever those tools use.
//
// # Forge Interface
//
// The [Forge] interface defines:
//
//   - Check: the CLI is installed and authenticated
//   - ListOpenPRs: open PRs/MRs of a repository, optionally filtered by
//     target branch, author and label
//
// # Platform Detection
//
// Use [Detect] to determine the forge from the remote URL. An explicit name
// (from the forge config key) wins; otherwise URL patterns select GitLab and
// everything else falls back to GitHub.
//
// # Platform Differences
//
//   - GitHub calls them pull requests, GitLab merge requests
//   - Drafts are filtered client-side on both platforms
//   - PRs from forks are skipped because their branches do not live on the remote
//
// Never call gh or glab directly outside this package.
package forge
