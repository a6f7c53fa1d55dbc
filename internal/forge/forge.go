package forge

import (
	"context"
	"slices"

	"github.com/raphi011/rebump/internal/cmd"
)

// OpenPR represents a PR in a list of open PRs
type OpenPR struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Branch  string `json:"branch"` // source branch
	Base    string `json:"base"`   // target branch
	IsDraft bool   `json:"is_draft"`
}

// ListOptions filters ListOpenPRs. Empty fields don't filter.
type ListOptions struct {
	Base   string // target branch
	Author string
	Label  string
	Drafts bool // include draft PRs
	Limit  int  // maximum number of PRs to request; 0 means DefaultLimit
}

// DefaultLimit is the number of PRs requested when ListOptions.Limit is 0.
const DefaultLimit = 100

// Forge represents a git hosting service (GitHub, GitLab, etc.)
type Forge interface {
	// Name returns the forge name ("github" or "gitlab")
	Name() string

	// Check verifies the CLI is installed and authenticated
	Check(ctx context.Context) error

	// ListOpenPRs lists open PRs whose branches live in the repository itself
	ListOpenPRs(ctx context.Context, repoURL string, opts ListOptions) ([]OpenPR, error)
}

// Runner executes an external command. cmd.Exec is used when nil.
type Runner func(ctx context.Context, dir, name string, args ...string) cmd.Result

func (r Runner) run(ctx context.Context, name string, args ...string) cmd.Result {
	if r == nil {
		return cmd.Exec(ctx, "", name, args...)
	}
	return r(ctx, "", name, args...)
}

// Branches returns the source branches of prs in order, without duplicates.
func Branches(prs []OpenPR) []string {
	var branches []string
	for _, pr := range prs {
		if pr.Branch != "" && !slices.Contains(branches, pr.Branch) {
			branches = append(branches, pr.Branch)
		}
	}
	return branches
}

func limitOf(opts ListOptions) int {
	if opts.Limit > 0 {
		return opts.Limit
	}
	return DefaultLimit
}
