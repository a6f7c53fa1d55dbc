package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// GitLab implements Forge for GitLab repositories using the glab CLI.
type GitLab struct {
	Run Runner
}

// Name returns "gitlab"
func (g *GitLab) Name() string {
	return "gitlab"
}

// Check verifies that glab CLI is available and authenticated
func (g *GitLab) Check(ctx context.Context) error {
	if g.Run == nil {
		if _, err := exec.LookPath("glab"); err != nil {
			return fmt.Errorf("glab not found: please install GitLab CLI (https://gitlab.com/gitlab-org/cli)")
		}
	}

	res := g.Run.run(ctx, "glab", "auth", "status")
	if !res.OK() {
		errMsg := strings.TrimSpace(res.Stderr)
		if errMsg == "" || strings.Contains(errMsg, "not logged") || strings.Contains(errMsg, "No token") {
			return fmt.Errorf("glab not authenticated: please run 'glab auth login'")
		}
		return fmt.Errorf("glab auth check failed: %s", errMsg)
	}
	return nil
}

// ListOpenPRs lists open merge requests using glab CLI
func (g *GitLab) ListOpenPRs(ctx context.Context, repoURL string, opts ListOptions) ([]OpenPR, error) {
	args := []string{"mr", "list",
		"-R", repoURL,
		"--output", "json",
		"--per-page", strconv.Itoa(limitOf(opts)),
	}
	if opts.Base != "" {
		args = append(args, "--target-branch", opts.Base)
	}
	if opts.Author != "" {
		args = append(args, "--author", opts.Author)
	}
	if opts.Label != "" {
		args = append(args, "--label", opts.Label)
	}

	res := g.Run.run(ctx, "glab", args...)
	if !res.OK() {
		return nil, fmt.Errorf("glab command failed: %w", res.Err())
	}
	return parseGitLabMRs([]byte(res.Stdout), opts.Drafts)
}

func parseGitLabMRs(data []byte, drafts bool) ([]OpenPR, error) {
	var mrs []struct {
		IID    int    `json:"iid"`
		Title  string `json:"title"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
		SourceBranch    string `json:"source_branch"`
		TargetBranch    string `json:"target_branch"`
		Draft           bool   `json:"draft"`
		SourceProjectID int    `json:"source_project_id"`
		TargetProjectID int    `json:"target_project_id"`
	}
	if err := json.Unmarshal(data, &mrs); err != nil {
		return nil, fmt.Errorf("failed to parse glab output: %w", err)
	}

	result := make([]OpenPR, 0, len(mrs))
	for _, mr := range mrs {
		if mr.SourceProjectID != mr.TargetProjectID || (mr.Draft && !drafts) {
			continue
		}
		result = append(result, OpenPR{
			Number:  mr.IID,
			Title:   mr.Title,
			Author:  mr.Author.Username,
			Branch:  mr.SourceBranch,
			Base:    mr.TargetBranch,
			IsDraft: mr.Draft,
		})
	}
	return result, nil
}
