package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/raphi011/rebump/internal/cmd"
	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/forge"
	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/resolve"
	"github.com/raphi011/rebump/internal/storage"
)

// Git is the subset of git operations the checks need.
type Git interface {
	RefExists(ctx context.Context, ref string) bool
	Fetch(ctx context.Context, remote string, refs ...string) cmd.Result
	RemoteURL(ctx context.Context, remote string) cmd.Result
}

// Env is what the checks inspect.
type Env struct {
	Repo      *git.Repo      // nil outside a repository
	Cfg       *config.Config // effective config
	ConfigErr error          // error from loading the config files
	Git       Git            // nil outside a repository

	// LookPath finds executables. Nil means exec.LookPath.
	LookPath func(file string) (string, error)
	// Forge picks the forge for a remote URL. Nil means forge.Detect.
	Forge func(remoteURL, name string) forge.Forge
}

func (e *Env) lookPath(file string) (string, error) {
	if e.LookPath == nil {
		return exec.LookPath(file)
	}
	return e.LookPath(file)
}

func (e *Env) forgeFor(url string) forge.Forge {
	if e.Forge == nil {
		return forge.Detect(url, e.Cfg.Forge)
	}
	return e.Forge(url, e.Cfg.Forge)
}

// Check runs every check and returns the issues found, tools first.
func Check(ctx context.Context, env *Env) []Issue {
	var issues []Issue
	issues = append(issues, tag(CategoryTools, checkTools(env))...)
	issues = append(issues, tag(CategoryConfig, checkConfig(env))...)

	if env.Repo == nil {
		return append(issues, Issue{
			Key:         "repository",
			Description: git.ErrNotRepository.Error(),
			Hint:        "run rebump inside the repository, or pass -C <path>",
			Category:    CategoryRepo,
			Severity:    Error,
		})
	}

	url, repoIssues := checkRemote(ctx, env)
	issues = append(issues, tag(CategoryRepo, repoIssues)...)
	issues = append(issues, tag(CategoryRepo, checkRefs(ctx, env))...)
	issues = append(issues, tag(CategoryRepo, checkRepoState(env))...)
	if url != "" {
		issues = append(issues, tag(CategoryTools, checkForge(ctx, env, url))...)
	}
	return issues
}

func tag(cat IssueCategory, issues []Issue) []Issue {
	for i := range issues {
		issues[i].Category = cat
	}
	return issues
}

func checkTools(env *Env) []Issue {
	if _, err := env.lookPath("git"); err != nil {
		return []Issue{{
			Key:         "git",
			Description: git.ErrGitNotFound.Error(),
			Hint:        "install git and make sure it is on PATH",
			Severity:    Error,
		}}
	}
	return nil
}

func checkConfig(env *Env) []Issue {
	if env.ConfigErr == nil {
		return nil
	}
	return []Issue{{
		Key:         "config",
		Description: env.ConfigErr.Error(),
		Hint:        "fix the file, or regenerate it with 'rebump config init -f'",
		Severity:    Error,
	}}
}

// checkRemote returns the remote URL when the configured remote exists.
func checkRemote(ctx context.Context, env *Env) (string, []Issue) {
	if env.Cfg.Remote == "" {
		return "", nil
	}
	res := env.Git.RemoteURL(ctx, env.Cfg.Remote)
	if !res.OK() {
		return "", []Issue{{
			Key:         env.Cfg.Remote,
			Description: fmt.Sprintf("remote %q is not configured", env.Cfg.Remote),
			Hint:        fmt.Sprintf("add it with 'git remote add %s <url>' or set remote in the config", env.Cfg.Remote),
			Severity:    Error,
		}}
	}
	return res.Line(), nil
}

func checkRefs(ctx context.Context, env *Env) []Issue {
	var issues []Issue

	if env.Cfg.Remote != "" {
		ref := env.Cfg.Remote + "/" + env.Cfg.MainBranch
		if !env.Git.RefExists(ctx, ref) {
			issues = append(issues, Issue{
				Key:         ref,
				Description: "remote main branch ref is missing",
				Hint:        fmt.Sprintf("git fetch %s %s", env.Cfg.Remote, env.Cfg.MainBranch),
				FixAction:   FixFetchMain,
				Severity:    Error,
			})
		}
	}

	if env.Cfg.BaseRef == resolve.BaseRefLocal || env.Cfg.Remote == "" {
		if !env.Git.RefExists(ctx, env.Cfg.MainBranch) {
			issues = append(issues, Issue{
				Key:         env.Cfg.MainBranch,
				Description: "local main branch does not exist",
				Hint:        "create it, or set main_branch in the config",
				Severity:    Error,
			})
		}
	}
	return issues
}

func checkRepoState(env *Env) []Issue {
	var issues []Issue

	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(env.Repo.GitDir, dir)); err == nil {
			issues = append(issues, Issue{
				Key:         env.Repo.Head,
				Description: "a rebase is in progress",
				Hint:        "resolve the conflicts and run 'git rebase --continue', or 'git rebase --abort'",
				Severity:    Error,
			})
			break
		}
	}

	lockPath := env.Repo.LockPath()
	if _, err := os.Stat(lockPath); err == nil {
		lock := storage.NewFileLock(lockPath)
		switch err := lock.TryLock(); {
		case errors.Is(err, storage.ErrLocked):
			issues = append(issues, Issue{
				Key:         filepath.Base(lockPath),
				Description: "another rebump run is in progress",
				Hint:        "wait for it to finish",
				Severity:    Warning,
			})
		case err == nil:
			lock.Unlock()
		}
	}
	return issues
}

func checkForge(ctx context.Context, env *Env, url string) []Issue {
	f := env.forgeFor(url)
	if err := f.Check(ctx); err != nil {
		return []Issue{{
			Key:         f.Name(),
			Description: err.Error(),
			Hint:        "only needed for --open-prs",
			Severity:    Warning,
		}}
	}
	return nil
}
