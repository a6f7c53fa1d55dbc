package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/log"
)

type workDirKey struct{}

func withWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// workDirFromContext returns the --dir flag value or the process working directory.
func workDirFromContext(ctx context.Context) (string, error) {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

// repoContext is the repository a command works on, with its effective config.
type repoContext struct {
	Repo  *git.Repo
	Cfg   *config.Config
	Local *config.LocalConfig
}

// openRepo discovers the repository around the working directory and merges
// its .rebump.toml into the global config.
func openRepo(ctx context.Context) (*repoContext, error) {
	dir, err := workDirFromContext(ctx)
	if err != nil {
		return nil, err
	}

	repo, err := git.Discover(dir)
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
		return nil, err
	}

	local, err := config.LoadLocal(repo.Root)
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Debug("repository", "root", repo.Root, "head", repo.Head, "local_config", local != nil)
	return &repoContext{
		Repo:  repo,
		Cfg:   config.MergeLocal(config.FromContext(ctx), local),
		Local: local,
	}, nil
}
