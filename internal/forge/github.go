package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// GitHub implements Forge for GitHub repositories using the gh CLI.
type GitHub struct {
	Run Runner
}

// Name returns "github"
func (g *GitHub) Name() string {
	return "github"
}

// Check verifies that gh CLI is available and authenticated
func (g *GitHub) Check(ctx context.Context) error {
	if g.Run == nil {
		if _, err := exec.LookPath("gh"); err != nil {
			return fmt.Errorf("gh not found: please install GitHub CLI (https://cli.github.com)")
		}
	}

	res := g.Run.run(ctx, "gh", "auth", "status")
	if !res.OK() {
		errMsg := strings.TrimSpace(res.Stderr)
		if errMsg == "" || strings.Contains(errMsg, "not logged") || strings.Contains(errMsg, "no accounts") {
			return fmt.Errorf("gh not authenticated: please run 'gh auth login'")
		}
		return fmt.Errorf("gh auth check failed: %s", errMsg)
	}
	return nil
}

// ListOpenPRs lists open pull requests using gh CLI
func (g *GitHub) ListOpenPRs(ctx context.Context, repoURL string, opts ListOptions) ([]OpenPR, error) {
	args := []string{"pr", "list",
		"-R", repoURL,
		"--state", "open",
		"--json", "number,title,author,headRefName,baseRefName,isDraft,isCrossRepository",
		"--limit", strconv.Itoa(limitOf(opts)),
	}
	if opts.Base != "" {
		args = append(args, "--base", opts.Base)
	}
	if opts.Author != "" {
		args = append(args, "--author", opts.Author)
	}
	if opts.Label != "" {
		args = append(args, "--label", opts.Label)
	}

	res := g.Run.run(ctx, "gh", args...)
	if !res.OK() {
		return nil, fmt.Errorf("gh command failed: %w", res.Err())
	}
	return parseGitHubPRs([]byte(res.Stdout), opts.Drafts)
}

func parseGitHubPRs(data []byte, drafts bool) ([]OpenPR, error) {
	var prs []struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Author struct {
			Login string `json:"login"`
		} `json:"author"`
		HeadRefName       string `json:"headRefName"`
		BaseRefName       string `json:"baseRefName"`
		IsDraft           bool   `json:"isDraft"`
		IsCrossRepository bool   `json:"isCrossRepository"`
	}
	if err := json.Unmarshal(data, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}

	result := make([]OpenPR, 0, len(prs))
	for _, pr := range prs {
		if pr.IsCrossRepository || (pr.IsDraft && !drafts) {
			continue
		}
		result = append(result, OpenPR{
			Number:  pr.Number,
			Title:   pr.Title,
			Author:  pr.Author.Login,
			Branch:  pr.HeadRefName,
			Base:    pr.BaseRefName,
			IsDraft: pr.IsDraft,
		})
	}
	return result, nil
}
