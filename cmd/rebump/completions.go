package main

import (
	"context"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/git"
)

// completeBranches completes local and remote-tracking branch names of the
// repository around the working directory.
func completeBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir, _ = os.Getwd()
	}
	repo, err := git.Discover(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res := git.NewCLI(repo.Root, "").ListBranches(ctx)
	if !res.OK() {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return res.Lines(), cobra.ShellCompDirectiveNoFileComp
}

// completeHooks completes hook names from the global and repository config.
func completeHooks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	merged := &cfg

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir, _ = os.Getwd()
	}
	if repo, err := git.Discover(dir); err == nil {
		if local, err := config.LoadLocal(repo.Root); err == nil {
			merged = config.MergeLocal(merged, local)
		}
	}

	var names []string
	for _, name := range slices.Sorted(maps.Keys(merged.Hooks)) {
		if desc := merged.Hooks[name].Description; desc != "" {
			name += "\t" + desc
		}
		names = append(names, name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
