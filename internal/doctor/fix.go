package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/raphi011/rebump/internal/ui/styles"
)

// fixAllIssues applies fixes for all fixable issues and returns how many
// could not be fixed.
func fixAllIssues(ctx context.Context, env *Env, issues []Issue, w io.Writer) int {
	var fixed, failed int

	for _, issue := range issues {
		switch issue.FixAction {
		case FixNone:
			continue

		case FixFetchMain:
			res := env.Git.Fetch(ctx, env.Cfg.Remote, env.Cfg.MainBranch)
			if !res.OK() {
				fmt.Fprintf(w, "  %s\n", styles.Fail(fmt.Sprintf("Failed to fetch %s: %v", issue.Key, res.Err())))
				failed++
				continue
			}
			fmt.Fprintf(w, "  %s\n", styles.OK(fmt.Sprintf("Fetched %s", issue.Key)))
			fixed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(w, "\nFixed %d issues, %d failed.\n", fixed, failed)
	} else {
		fmt.Fprintf(w, "\nFixed %d issues.\n", fixed)
	}
	return failed
}
