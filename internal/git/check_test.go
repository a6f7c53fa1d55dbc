package git

import (
	"errors"
	"testing"
)

func TestCheckGit_Available(t *testing.T) {
	t.Parallel()
	if err := CheckGit(); err != nil {
		t.Fatalf("CheckGit() = %v, want nil (git should be in PATH)", err)
	}
}

func TestCheckGit_MissingFromPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if err := CheckGit(); !errors.Is(err, ErrGitNotFound) {
		t.Errorf("CheckGit() = %v, want ErrGitNotFound", err)
	}
}
