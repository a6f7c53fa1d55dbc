package git

import (
	"context"

	"github.com/raphi011/rebump/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// execGit runs git in dir and returns its result.
func execGit(ctx context.Context, dir string, args ...string) cmd.Result {
	return cmd.Exec(ctx, "", "git", gitArgs(dir, args)...)
}
