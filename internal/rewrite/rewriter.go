package rewrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"
)

// binarySniffLen matches git's heuristic: a NUL byte in the first 8000
// bytes marks a file as binary.
const binarySniffLen = 8000

// Status is the result kind for one file.
type Status int

const (
	Unchanged Status = iota
	Updated
	Skipped
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Updated:
		return "updated"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Outcome describes what happened to one file.
type Outcome struct {
	Path   string
	Status Status
	Counts Counts // replacements per form, set when Updated
	Diff   string // unified diff, set when Updated
	Err    error  // *Error, set when Skipped
}

// Reason returns why the file was skipped, or "".
func (o Outcome) Reason() string {
	var rwErr *Error
	if errors.As(o.Err, &rwErr) {
		return rwErr.Reason
	}
	if o.Err != nil {
		return o.Err.Error()
	}
	return ""
}

// Error reports a file that could not be rewritten.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Rewriter applies a Substitution to files of one branch.
type Rewriter struct {
	FS FileSystem
}

// New returns a Rewriter over fsys.
func New(fsys FileSystem) *Rewriter {
	return &Rewriter{FS: fsys}
}

// Rewrite applies sub to a single file.
func (r *Rewriter) Rewrite(ctx context.Context, path string, sub Substitution) Outcome {
	out := Outcome{Path: path}

	data, err := r.FS.ReadFile(ctx, path)
	if err != nil {
		return skip(out, readReason(err), err)
	}
	if isBinary(data) {
		return skip(out, "binary file", nil)
	}
	if !utf8.Valid(data) {
		return skip(out, "not valid UTF-8 text", nil)
	}

	before := string(data)
	after, counts := Replace(before, sub)
	if after == before {
		return out
	}

	diff, err := UnifiedDiff(path, before, after)
	if err != nil {
		return skip(out, "diff failed", err)
	}
	if err := r.FS.WriteFile(ctx, path, []byte(after)); err != nil {
		return skip(out, "write failed", err)
	}

	out.Status = Updated
	out.Counts = counts
	out.Diff = diff
	return out
}

// RewriteAll applies sub to every path in order. A skipped file never stops
// the remaining files from being processed.
func (r *Rewriter) RewriteAll(ctx context.Context, paths []string, sub Substitution) []Outcome {
	outcomes := make([]Outcome, 0, len(paths))
	for _, path := range paths {
		outcomes = append(outcomes, r.Rewrite(ctx, path, sub))
	}
	return outcomes
}

// Tally counts outcomes per status.
func Tally(outcomes []Outcome) (updated, unchanged, skipped int) {
	for _, o := range outcomes {
		switch o.Status {
		case Updated:
			updated++
		case Unchanged:
			unchanged++
		case Skipped:
			skipped++
		}
	}
	return updated, unchanged, skipped
}

func skip(out Outcome, reason string, err error) Outcome {
	out.Status = Skipped
	out.Err = &Error{Path: out.Path, Reason: reason, Err: err}
	return out
}

func readReason(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "file does not exist"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	}
	return "read failed"
}

func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
