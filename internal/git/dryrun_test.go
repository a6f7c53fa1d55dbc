package git

import (
	"context"
	"slices"
	"strings"
	"testing"
)

func TestDryRun_RecordsMutatingCalls(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	mustGit(t, repo, "branch", "feat-a")
	before := mustGit(t, repo, "rev-parse", "HEAD")

	d := NewDryRun(NewCLI(repo, "origin"), "origin", "")
	calls := []func(){
		func() { d.Checkout(ctx, "feat-a") },
		func() { d.CommitAll(ctx, "Update 1.2 → 1.4", []string{"version.txt"}) },
		func() { d.Fetch(ctx, "origin", "main") },
		func() { d.Rebase(ctx, "origin/main") },
		func() { d.PushForceWithLease(ctx, "origin", "feat-a") },
		func() { d.SwitchTo(ctx, "main") },
	}
	for _, call := range calls {
		call()
	}

	want := []string{
		"git checkout feat-a",
		"git add -- version.txt",
		`git commit -m "Update 1.2 → 1.4" -- version.txt`,
		"git fetch --quiet origin main",
		"git rebase origin/main",
		"git push --force-with-lease origin feat-a",
		"git checkout main",
	}
	if got := d.Recorded(); !slices.Equal(got, want) {
		t.Errorf("Recorded() =\n%q\nwant\n%q", got, want)
	}

	if after := mustGit(t, repo, "rev-parse", "HEAD"); after != before {
		t.Errorf("HEAD moved during dry run: %s -> %s", before, after)
	}
	if current := mustGit(t, repo, "branch", "--show-current"); current != "main" {
		t.Errorf("dry run switched branches: now on %q", current)
	}
}

func TestDryRun_PassesReadsThrough(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	d := NewDryRun(NewCLI(repo, "origin"), "origin", repo)

	if got := d.CurrentBranch(ctx).Line(); got != "main" {
		t.Errorf("CurrentBranch = %q, want main", got)
	}
	if !d.RefExists(ctx, "main") {
		t.Error("RefExists(main) = false")
	}
	if len(d.Recorded()) != 0 {
		t.Errorf("read-only calls were recorded: %v", d.Recorded())
	}
}

func TestDryRun_DrainAndDir(t *testing.T) {
	t.Parallel()
	d := NewDryRun(nil, "", "/work/repo")
	res := d.Rebase(context.Background(), "origin/main")
	if !res.OK() {
		t.Error("recorded call should report success")
	}

	got := d.Drain()
	if !slices.Equal(got, []string{"git -C /work/repo rebase origin/main"}) {
		t.Errorf("Drain() = %q", got)
	}
	if len(d.Recorded()) != 0 {
		t.Error("Drain() should clear the record")
	}
}

func TestCommandLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"git", "status"}, "git status"},
		{[]string{"git", "commit", "-m", "two words"}, `git commit -m "two words"`},
		{[]string{"git", "commit", "-m", ""}, `git commit -m ""`},
		{[]string{"git", "commit", "-m", `say "hi"`}, `git commit -m "say \"hi\""`},
	}
	for _, tt := range tests {
		if got := CommandLine(tt.args); got != tt.want {
			t.Errorf("CommandLine(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestDryRun_Checkout(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	mustGit(t, repo, "checkout", "-b", "remote-only")
	commitFile(t, repo, "r.txt", "r\n", "remote work")
	mustGit(t, repo, "push", "origin", "remote-only")
	mustGit(t, repo, "checkout", "main")
	mustGit(t, repo, "branch", "-D", "remote-only")
	mustGit(t, repo, "branch", "local-only")

	tests := []struct {
		name     string
		remote   string
		branch   string
		wantOK   bool
		recorded []string
	}{
		{"local branch", "origin", "local-only", true, []string{"git checkout local-only"}},
		{"remote branch", "origin", "remote-only", true, []string{"git checkout remote-only"}},
		{"unknown branch", "origin", "does-not-exist", false, nil},
		{"remote branch without remote", "", "remote-only", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := NewDryRun(NewCLI(repo, tt.remote), tt.remote, "")
			res := d.Checkout(ctx, tt.branch)
			if res.OK() != tt.wantOK {
				t.Fatalf("Checkout(%q).OK() = %v, want %v (stderr %q)", tt.branch, res.OK(), tt.wantOK, res.Stderr)
			}
			if !tt.wantOK && !strings.Contains(res.Stderr, "did not match") {
				t.Errorf("Stderr = %q, want a pathspec error", res.Stderr)
			}
			if got := d.Recorded(); !slices.Equal(got, tt.recorded) {
				t.Errorf("Recorded() = %q, want %q", got, tt.recorded)
			}
		})
	}
}
