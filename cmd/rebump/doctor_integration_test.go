//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDoctor_Healthy tests `rebump doctor` on a freshly cloned repository.
//
// Scenario: origin/main is fetched and gh is logged in
// Expected: no issues, exit 0
func TestDoctor_Healthy(t *testing.T) {
	r := setupTestRepo(t)
	fakeGH(t, `[]`)

	res := runRebump(t, r.Work, "", "doctor")
	if res.Err != nil {
		t.Fatalf("doctor failed: %v\nstdout:\n%s", res.Err, res.Stdout)
	}
	if !strings.Contains(res.Stdout, "No issues found") {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

// TestDoctor_FixFetchesMain tests `rebump doctor --fix`.
//
// Scenario: the origin/main ref was deleted locally
// Expected: doctor reports it and exits 1; --fix fetches it back
func TestDoctor_FixFetchesMain(t *testing.T) {
	r := setupTestRepo(t)
	fakeGH(t, `[]`)
	gitRun(t, r.Work, "update-ref", "-d", "refs/remotes/origin/main")

	res := runRebump(t, r.Work, "", "doctor")
	if !errors.Is(res.Err, errNotReady) {
		t.Fatalf("err = %v, want errNotReady\nstdout:\n%s", res.Err, res.Stdout)
	}
	if !strings.Contains(res.Stdout, "origin/main: remote main branch ref is missing") {
		t.Errorf("stdout missing issue:\n%s", res.Stdout)
	}

	res = runRebump(t, r.Work, "", "doctor", "--fix")
	if res.Err != nil {
		t.Fatalf("doctor --fix failed: %v\nstdout:\n%s", res.Err, res.Stdout)
	}
	gitRun(t, r.Work, "rev-parse", "--verify", "refs/remotes/origin/main")
}

// TestDoctor_BrokenConfigAndRebase tests that doctor runs despite a broken config.
//
// Scenario: the global config has an unknown key and a rebase is in progress
// Expected: both are reported, exit 1
func TestDoctor_BrokenConfigAndRebase(t *testing.T) {
	r := setupTestRepo(t)
	fakeGH(t, `[]`)
	writeFile(t, "", os.Getenv("REBUMP_CONFIG"), "bogus = 1\n")
	if err := os.Mkdir(filepath.Join(r.Work, ".git", "rebase-merge"), 0o755); err != nil {
		t.Fatal(err)
	}

	res := runRebump(t, r.Work, "", "doctor")
	if !errors.Is(res.Err, errNotReady) {
		t.Fatalf("err = %v, want errNotReady", res.Err)
	}
	for _, want := range []string{"Config:", "bogus", "a rebase is in progress"} {
		if !strings.Contains(res.Stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.Stdout)
		}
	}
}
