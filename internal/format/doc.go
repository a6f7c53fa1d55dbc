// Package format renders text shown to the user and written into commits.
//
// # Commit Message Placeholders
//
// Commit message templates may use these placeholders:
//
//   - {old}: the value being replaced
//   - {new}: the replacement value
//   - {branch}: the branch being updated
//
// Default template is "Update {old} → {new} in branch files".
//
// # Validation
//
// Use [ValidateMessage] to check templates before use. It ensures all
// placeholders are recognized and the template is not blank.
//
// # Diff Highlighting
//
// [HighlightDiff] colors unified diffs with chroma for terminals that support
// it and returns them untouched otherwise.
package format
