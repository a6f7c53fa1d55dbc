package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/raphi011/rebump/internal/ui/styles"
)

// ErrUnhealthy is returned by Run when errors remain after checking and fixing.
var ErrUnhealthy = errors.New("repository is not ready for rebump")

// Run performs the checks, prints the results to w and optionally fixes issues.
func Run(ctx context.Context, env *Env, fix bool, w io.Writer) error {
	fmt.Fprintln(w, "Checking tools, config and repository...")
	issues := Check(ctx, env)

	if len(issues) == 0 {
		fmt.Fprintf(w, "\n%s\n", styles.OK("No issues found"))
		return nil
	}

	fmt.Fprintf(w, "\nFound %d issues:\n", len(issues))
	printIssuesByCategory(w, issues)

	remaining := issues
	if fix && countFixable(issues) > 0 {
		fmt.Fprintln(w)
		fixAllIssues(ctx, env, issues, w)
		// Re-check so the verdict reflects the repaired state.
		remaining = Check(ctx, env)
	}

	if countErrors(remaining) > 0 {
		if !fix && countFixable(remaining) > 0 {
			fmt.Fprintln(w, "\nRun 'rebump doctor --fix' to repair.")
		}
		return ErrUnhealthy
	}
	return nil
}

func countFixable(issues []Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.Fixable() {
			n++
		}
	}
	return n
}

func countErrors(issues []Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == Error {
			n++
		}
	}
	return n
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(w io.Writer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryTools:  "Tools",
		CategoryConfig: "Config",
		CategoryRepo:   "Repository",
	}

	for _, cat := range []IssueCategory{CategoryTools, CategoryConfig, CategoryRepo} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			line := fmt.Sprintf("%s: %s", issue.Key, issue.Description)
			if issue.Severity == Error {
				line = styles.Fail(line)
			} else {
				line = styles.Warn(line)
			}
			fmt.Fprintf(w, "  %s\n", line)
			if issue.Hint != "" {
				fmt.Fprintf(w, "      %s\n", issue.Hint)
			}
		}
	}
}
