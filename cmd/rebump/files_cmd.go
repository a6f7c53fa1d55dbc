package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/log"
	"github.com/raphi011/rebump/internal/output"
	"github.com/raphi011/rebump/internal/resolve"
	"github.com/raphi011/rebump/internal/ui/progress"
	"github.com/raphi011/rebump/internal/ui/styles"
)

type branchFiles struct {
	Branch string   `json:"branch"`
	Base   string   `json:"base"`
	Files  []string `json:"files"`
	Error  string   `json:"error,omitempty"`
}

func newFilesCmd() *cobra.Command {
	var (
		src        sourceFlags
		mainBranch string
		remote     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "files [branch...]",
		Short:   "List the files each branch changed",
		GroupID: GroupCore,
		Long: `List the files each branch added or modified since it forked from the
main branch. These are the only files "rebump run" rewrites.

Nothing is checked out or modified.`,
		Example: `  rebump files feat-a feat-b
  rebump files -f branches.json --json
  rebump files --open-prs --author me`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			rc, err := openRepo(ctx)
			if err != nil {
				return err
			}
			cfg := *rc.Cfg
			if cmd.Flags().Changed("main-branch") {
				cfg.MainBranch = mainBranch
			}
			if cmd.Flags().Changed("remote") {
				cfg.Remote = remote
			}

			list, err := src.load(ctx, rc, &cfg, args)
			if err != nil {
				return err
			}

			gw := git.NewCLI(rc.Repo.Root, cfg.Remote)
			opts := resolve.Options{MainBranch: cfg.MainBranch, Remote: cfg.Remote, BaseRef: cfg.BaseRef}

			var sp *progress.Spinner
			if w := l.Progress(); !l.IsVerbose() && progress.Interactive(w) {
				sp = progress.NewSpinner(w, "Resolving changed files")
				sp.Start()
			}

			results := make([]branchFiles, 0, len(list))
			failed := 0
			for i, name := range list {
				if sp != nil {
					sp.UpdateMessage(fmt.Sprintf("Resolving %s (%d/%d)", name, i+1, len(list)))
				}
				refs := resolve.RefsFor(ctx, gw, name, opts)
				files, err := resolve.ChangedFiles(ctx, gw, refs)
				r := branchFiles{Branch: name, Base: refs.Main, Files: files}
				if r.Files == nil {
					r.Files = []string{}
				}
				if err != nil {
					failed++
					r.Error = err.Error()
				}
				results = append(results, r)
			}
			if sp != nil {
				sp.Stop()
			}

			for _, r := range results {
				if r.Error != "" {
					l.Println(styles.Fail(fmt.Sprintf("%s: %s", r.Branch, r.Error)))
				}
			}

			if jsonOutput {
				if err := out.JSON(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if r.Error != "" {
						continue
					}
					out.Printf("%s (vs %s):\n", r.Branch, r.Base)
					if len(r.Files) == 0 {
						out.Println("  (no changed files)")
					}
					for _, f := range r.Files {
						out.Printf("  %s\n", f)
					}
				}
			}

			if failed > 0 {
				return errBranchesFailed
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&mainBranch, "main-branch", "m", "", "Main branch name (default from config, else main)")
	cmd.Flags().StringVar(&remote, "remote", "", "Remote whose main branch to compare against")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.RegisterFlagCompletionFunc("main-branch", completeBranches)
	cmd.ValidArgsFunction = completeBranches

	return cmd
}
