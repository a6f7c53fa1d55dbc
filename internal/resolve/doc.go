// Package resolve determines which files a feature branch originally touched.
//
// A branch's own changes are the paths that differ between the branch tip and
// its merge-base with the integration branch. Paths changed on the
// integration branch after the fork point are never included, and deleted
// paths are excluded because there is nothing left to rewrite in them.
//
// # Ref Selection
//
// [RefsFor] picks which refs to compare. The integration side prefers the
// remote-tracking ref (origin/main) when base_ref is "remote", falling back
// to the local branch. The feature side prefers the local branch and falls
// back to the remote-tracking ref, so a dry run can resolve branches that
// were never checked out locally.
package resolve
