//go:build integration

package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestFiles_ListsChangedFiles tests `rebump files`.
//
// Scenario: feat-a added one file and modified another
// Expected: both are listed, files only main changed are not
func TestFiles_ListsChangedFiles(t *testing.T) {
	r := setupTestRepo(t)
	r.addBranch(t, "feat-a", map[string]string{
		"feature.txt": "new\n",
		"version.txt": "version = 1.2\nextra\n",
	})
	r.advanceMain(t, "other.txt", "main only\n")

	res := runRebump(t, r.Work, "", "files", "feat-a")
	if res.Err != nil {
		t.Fatalf("files failed: %v\nstderr:\n%s", res.Err, res.Stderr)
	}
	for _, want := range []string{"feat-a (vs origin/main):", "  feature.txt", "  version.txt"} {
		if !strings.Contains(res.Stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.Stdout)
		}
	}
	if strings.Contains(res.Stdout, "other.txt") {
		t.Errorf("output lists a file only main changed:\n%s", res.Stdout)
	}
}

// TestFiles_JSON tests `rebump files --json` with a missing branch.
//
// Scenario: User lists files for feat-a and a branch that does not exist
// Expected: JSON has both entries, the missing one with an error; exit signals failure
func TestFiles_JSON(t *testing.T) {
	r := setupTestRepo(t)
	r.addBranch(t, "feat-a", map[string]string{"feature.txt": "new\n"})

	res := runRebump(t, r.Work, "", "files", "feat-a", "nope", "--json")
	if res.Err == nil {
		t.Fatal("expected failure for missing branch")
	}

	var got []branchFiles
	if err := json.Unmarshal([]byte(res.Stdout), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", res.Stdout, err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Error != "" || len(got[0].Files) != 1 || got[0].Files[0] != "feature.txt" {
		t.Errorf("feat-a entry = %+v", got[0])
	}
	if got[1].Error == "" {
		t.Errorf("nope entry should carry an error: %+v", got[1])
	}
}

// fakeGH puts a gh stub on PATH that answers "pr list" with prs and
// records its arguments in the returned file.
func fakeGH(t *testing.T, prs string) string {
	t.Helper()

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	writeFile(t, dir, "prs.json", prs)
	script := `#!/bin/sh
echo "$@" >> "` + argsFile + `"
case "$1" in
auth) exit 0 ;;
pr) cat "` + filepath.Join(dir, "prs.json") + `" ;;
*) exit 1 ;;
esac
`
	if err := os.WriteFile(filepath.Join(dir, "gh"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return argsFile
}

// TestFiles_OpenPRs tests `rebump files --open-prs`.
//
// Scenario: gh reports a same-repo PR, a draft and a fork PR
// Expected: only the same-repo branch is listed; gh is asked for PRs into main by the author
func TestFiles_OpenPRs(t *testing.T) {
	r := setupTestRepo(t)
	r.addBranch(t, "feat-a", map[string]string{"feature.txt": "new\n"})
	argsFile := fakeGH(t, `[
  {"number": 1, "title": "A", "author": {"login": "me"}, "headRefName": "feat-a", "baseRefName": "main"},
  {"number": 2, "title": "B", "author": {"login": "me"}, "headRefName": "wip", "baseRefName": "main", "isDraft": true},
  {"number": 3, "title": "C", "author": {"login": "me"}, "headRefName": "fork", "baseRefName": "main", "isCrossRepository": true}
]`)

	res := runRebump(t, r.Work, "", "files", "--open-prs", "--author", "me", "--json")
	if res.Err != nil {
		t.Fatalf("files failed: %v\nstderr:\n%s", res.Err, res.Stderr)
	}

	var got []branchFiles
	if err := json.Unmarshal([]byte(res.Stdout), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", res.Stdout, err)
	}
	if len(got) != 1 || got[0].Branch != "feat-a" {
		t.Fatalf("got %+v, want only feat-a", got)
	}

	calls, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"auth status", "--base main", "--author me"} {
		if !strings.Contains(string(calls), want) {
			t.Errorf("gh calls missing %q:\n%s", want, calls)
		}
	}
}

// TestFiles_OpenPRsRejectsBranchArgs tests that --open-prs excludes positional branches.
func TestFiles_OpenPRsRejectsBranchArgs(t *testing.T) {
	r := setupTestRepo(t)
	fakeGH(t, `[]`)

	res := runRebump(t, r.Work, "", "files", "--open-prs", "feat-a")
	if res.Err == nil || !strings.Contains(res.Err.Error(), "--open-prs") {
		t.Fatalf("err = %v, want --open-prs conflict", res.Err)
	}
}

// TestFiles_PRFilterWithoutOpenPRs tests that --author needs --open-prs.
func TestFiles_PRFilterWithoutOpenPRs(t *testing.T) {
	r := setupTestRepo(t)

	res := runRebump(t, r.Work, "", "files", "feat-a", "--author", "me")
	if !errors.Is(res.Err, errForgeFilter) {
		t.Fatalf("err = %v, want errForgeFilter", res.Err)
	}
}
