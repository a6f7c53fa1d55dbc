package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/rebump/internal/log"
)

// ExitStartFailed is the exit code reported when a command could not be
// started at all (binary missing, context already cancelled).
const ExitStartFailed = -1

// Result is the outcome of one external command.
type Result struct {
	Args     []string // command name followed by its arguments
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the command exited with status 0.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Line returns stdout with surrounding whitespace removed.
func (r Result) Line() string {
	return strings.TrimSpace(r.Stdout)
}

// Lines returns the non-empty, trimmed lines of stdout.
func (r Result) Lines() []string {
	var lines []string
	for _, line := range strings.Split(r.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Records returns the NUL-terminated fields of stdout, as printed by git's
// -z options. Fields are returned verbatim.
func (r Result) Records() []string {
	var records []string
	for _, rec := range strings.Split(r.Stdout, "\x00") {
		if rec != "" {
			records = append(records, rec)
		}
	}
	return records
}

// String returns the command line as a shell-like string.
func (r Result) String() string {
	return strings.Join(r.Args, " ")
}

// Err returns nil for a successful result and an *ExitError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ExitError{Result: r}
}

// ExitError describes a command that exited nonzero or failed to start.
type ExitError struct {
	Result Result
}

func (e *ExitError) Error() string {
	if msg := strings.TrimSpace(e.Result.Stderr); msg != "" {
		return msg
	}
	if e.Result.ExitCode == ExitStartFailed {
		return fmt.Sprintf("%s: failed to start", e.Result.String())
	}
	return fmt.Sprintf("%s: exit status %d", e.Result.String(), e.Result.ExitCode)
}

// Exec runs name with args in dir and waits for it to exit.
// It never returns an error; inspect the Result instead.
func Exec(ctx context.Context, dir, name string, args ...string) Result {
	res := Result{Args: append([]string{name}, args...)}

	if err := ctx.Err(); err != nil {
		res.ExitCode = ExitStartFailed
		res.Stderr = err.Error()
		return res
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))

	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case ctx.Err() != nil:
		res.ExitCode = ExitStartFailed
		res.Stderr = joinNonEmpty(res.Stderr, ctx.Err().Error())
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = ExitStartFailed
		res.Stderr = joinNonEmpty(res.Stderr, err.Error())
	}
	return res
}

func joinNonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a == "" {
		return b
	}
	return a + "\n" + b
}
