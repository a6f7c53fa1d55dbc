package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/log"
	"github.com/raphi011/rebump/internal/output"
	"github.com/raphi011/rebump/internal/storage"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage rebump configuration.

Global config: ~/.config/rebump/config.toml (or $REBUMP_CONFIG)
Local config:  .rebump.toml (in the repository root)`,
		Example: `  rebump config init          # Create default global config
  rebump config init --local  # Create local repo config
  rebump config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config at ~/.config/rebump/config.toml.
With --local, creates a per-repo .rebump.toml in the current repo root.`,
		Example: `  rebump config init           # Create global config
  rebump config init --local   # Create local repo config
  rebump config init -f        # Overwrite existing config
  rebump config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			content := config.DefaultConfig()
			if local {
				content = config.DefaultLocalConfig()
			}
			if stdout {
				out.Printf("%s", content)
				return nil
			}

			var path string
			if local {
				dir, err := workDirFromContext(ctx)
				if err != nil {
					return err
				}
				repo, err := git.Discover(dir)
				if err != nil {
					return fmt.Errorf("--local needs a repository: %w", err)
				}
				path = filepath.Join(repo.Root, config.LocalConfigFileName)
			} else {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}

			if err := writeConfigFile(path, content, force); err != nil {
				return err
			}
			log.FromContext(ctx).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .rebump.toml instead of global config")

	return cmd
}

func writeConfigFile(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}
	return storage.WriteFileAtomic(path, []byte(content), 0644)
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

When inside a repo, shows the merged config with the keys set by the local
.rebump.toml marked. Otherwise shows the global config only.`,
		Example: `  rebump config show         # Show config (merged if in a repo)
  rebump config show --json  # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			effCfg := config.FromContext(ctx)
			var localPath string
			var local *config.LocalConfig
			if rc, err := openRepo(ctx); err == nil {
				effCfg = rc.Cfg
				local = rc.Local
				localPath = filepath.Join(rc.Repo.Root, config.LocalConfigFileName)
			} else {
				l.Debug("no repository config", "err", err)
			}

			if jsonOutput {
				return out.JSON(effCfg)
			}

			globalPath, _ := config.Path()
			out.Printf("Global config: %s\n", globalPath)
			if localPath != "" {
				if local != nil {
					out.Printf("Local config:  %s\n", localPath)
				} else {
					out.Printf("Local config:  (none)\n")
				}
			}
			out.Println()

			// Helper to annotate source
			source := func(key string) string {
				if local.Sets(key) {
					return " (local)"
				}
				return ""
			}

			out.Printf("main_branch: %s%s\n", effCfg.MainBranch, source("main_branch"))
			out.Printf("remote: %s%s\n", effCfg.Remote, source("remote"))
			out.Printf("base_ref: %s%s\n", effCfg.BaseRef, source("base_ref"))
			out.Printf("push: %v%s\n", effCfg.Push, source("push"))
			out.Printf("commit_message: %s%s\n", effCfg.CommitMessage, source("commit_message"))
			out.Printf("forge: %s%s\n", valueOr(effCfg.Forge, "(detect)"), source("forge"))
			out.Printf("prompt.confirm: %v%s\n", effCfg.Prompt.Confirm, source("prompt.confirm"))
			out.Printf("diff.style: %s%s\n", effCfg.Diff.Style, source("diff.style"))
			out.Printf("diff.color: %v%s\n", effCfg.Diff.Color, source("diff.color"))

			if len(effCfg.Hooks) > 0 {
				out.Println()
				out.Println("hooks:")
			}
			for _, name := range slices.Sorted(maps.Keys(effCfg.Hooks)) {
				hook := effCfg.Hooks[name]
				on := "manual"
				if len(hook.On) > 0 {
					on = strings.Join(hook.On, ", ")
				}
				out.Printf("  %s: %s [%s]%s\n", name, hook.Command, on, source("hooks."+name))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
