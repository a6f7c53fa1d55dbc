//go:build integration

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// gitRun runs git in dir and returns its trimmed stdout.
func gitRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// testRepo is a working clone plus the bare repository it pushes to.
type testRepo struct {
	Work   string
	Origin string
}

// setupTestRepo creates a bare origin and a clone with a main branch holding
// version.txt ("version = 1.2"). It also isolates the global config.
func setupTestRepo(t *testing.T) testRepo {
	t.Helper()

	dir := resolvePath(t, t.TempDir())
	t.Setenv("REBUMP_CONFIG", filepath.Join(dir, "config.toml"))

	origin := filepath.Join(dir, "origin.git")
	work := filepath.Join(dir, "work")
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatalf("failed to create work dir: %v", err)
	}

	gitRun(t, dir, "init", "--bare", origin)
	gitRun(t, origin, "symbolic-ref", "HEAD", "refs/heads/main")

	gitRun(t, work, "init")
	gitRun(t, work, "symbolic-ref", "HEAD", "refs/heads/main")
	gitRun(t, work, "config", "user.email", "test@test.com")
	gitRun(t, work, "config", "user.name", "Test User")
	gitRun(t, work, "config", "commit.gpgsign", "false")
	gitRun(t, work, "remote", "add", "origin", origin)

	writeFile(t, work, "README.md", "# demo\n")
	writeFile(t, work, "version.txt", "version = 1.2\n")
	gitRun(t, work, "add", ".")
	gitRun(t, work, "commit", "-m", "Initial commit")
	gitRun(t, work, "push", "-u", "origin", "main")

	return testRepo{Work: work, Origin: origin}
}

// addBranch creates branch from main with one commit writing files,
// pushes it and returns to main.
func (r testRepo) addBranch(t *testing.T, branch string, files map[string]string) {
	t.Helper()
	gitRun(t, r.Work, "checkout", "-b", branch, "main")
	for name, content := range files {
		writeFile(t, r.Work, name, content)
	}
	gitRun(t, r.Work, "add", ".")
	gitRun(t, r.Work, "commit", "-m", "Work on "+branch)
	gitRun(t, r.Work, "push", "-u", "origin", branch)
	gitRun(t, r.Work, "checkout", "main")
}

// advanceMain adds a commit to main and pushes it.
func (r testRepo) advanceMain(t *testing.T, name, content string) {
	t.Helper()
	gitRun(t, r.Work, "checkout", "main")
	writeFile(t, r.Work, name, content)
	gitRun(t, r.Work, "add", name)
	gitRun(t, r.Work, "commit", "-m", "Update "+name)
	gitRun(t, r.Work, "push", "origin", "main")
}

// snapshot captures HEAD, all refs and the worktree status.
func (r testRepo) snapshot(t *testing.T) string {
	t.Helper()
	return strings.Join([]string{
		gitRun(t, r.Work, "symbolic-ref", "HEAD"),
		gitRun(t, r.Work, "for-each-ref", "--format=%(refname) %(objectname)"),
		gitRun(t, r.Work, "status", "--porcelain"),
	}, "\n")
}

type cmdResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runRebump executes the root command inside dir with stdin as input.
func runRebump(t *testing.T, dir, stdin string, args ...string) cmdResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"-C", dir}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(t.Context())
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
