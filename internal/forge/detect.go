package forge

import (
	"strings"
)

// Detect returns the Forge for a remote URL. A non-empty name selects the
// forge explicitly, which is needed for self-hosted instances whose URL
// gives no hint. Falls back to pattern matching, then defaults to GitHub.
func Detect(remoteURL, name string) Forge {
	if name != "" {
		return ByName(name)
	}
	if isGitLab(remoteURL) {
		return &GitLab{}
	}
	// Default to GitHub (most common)
	return &GitHub{}
}

// ByName returns a Forge implementation by name.
// Supported names: "github", "gitlab"
// Returns GitHub as default for unknown names.
func ByName(name string) Forge {
	switch strings.ToLower(name) {
	case "gitlab":
		return &GitLab{}
	default:
		return &GitHub{}
	}
}

// isGitLab checks if a URL points to a GitLab instance
func isGitLab(url string) bool {
	url = strings.ToLower(url)

	// gitlab.com (SaaS) and common self-hosted patterns
	if strings.Contains(url, "gitlab.") {
		return true
	}

	// Check for "/gitlab/" in path (some orgs host at company.com/gitlab/)
	return strings.Contains(url, "/gitlab/")
}
