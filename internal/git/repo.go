package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// ErrNotRepository indicates the path is not inside a git working tree.
var ErrNotRepository = errors.New("not inside a git repository")

// Repo describes the repository rebump operates on.
type Repo struct {
	Root     string // working tree root
	GitDir   string // .git directory of the working tree
	Head     string // short branch name, or commit hash when detached
	Detached bool
}

// Discover locates the repository containing path by walking up to the
// nearest .git. Bare repositories are rejected because the workflow needs a
// working tree to rewrite files in.
func Discover(path string) (*Repo, error) {
	repo, err := gitlib.PlainOpenWithOptions(path, &gitlib.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gitlib.ErrIsBareRepository) {
			return nil, fmt.Errorf("%s is a bare repository: a working tree is required", path)
		}
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	r := &Repo{Root: wt.Filesystem.Root(), GitDir: filepath.Join(wt.Filesystem.Root(), ".git")}
	if st, ok := repo.Storer.(*filesystem.Storage); ok {
		r.GitDir = st.Filesystem().Root()
	}

	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Unborn branch: no commits yet.
		return r, nil
	case err != nil:
		return nil, fmt.Errorf("read HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		r.Head = head.Name().Short()
	} else {
		r.Head = head.Hash().String()
		r.Detached = true
	}
	return r, nil
}

// LockPath is the file that serializes rebump runs in this repository.
func (r *Repo) LockPath() string {
	return filepath.Join(r.GitDir, "rebump.lock")
}
