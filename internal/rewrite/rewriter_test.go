package rewrite

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/rebump/internal/git/gittest"
)

var bump = Substitution{Old: "1.2", New: "1.4"}

func writeRepoFile(t *testing.T, root, name, content string, perm os.FileMode) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readRepoFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestRewrite_Updated(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeRepoFile(t, root, "version.txt", "version = 1.2\n", 0644)

	out := New(DirFS{Root: root}).Rewrite(context.Background(), "version.txt", bump)
	if out.Status != Updated {
		t.Fatalf("Status = %v, want updated (err %v)", out.Status, out.Err)
	}
	if got := readRepoFile(t, root, "version.txt"); got != "version = 1.4\n" {
		t.Errorf("content = %q, want %q", got, "version = 1.4\n")
	}
	if out.Counts.Total() != 1 {
		t.Errorf("Counts = %v, want 1 replacement", out.Counts)
	}
	for _, want := range []string{"--- a/version.txt", "+++ b/version.txt", "-version = 1.2", "+version = 1.4"} {
		if !strings.Contains(out.Diff, want) {
			t.Errorf("Diff missing %q:\n%s", want, out.Diff)
		}
	}
}

func TestRewrite_UnchangedIsByteIdentical(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	content := "version = 1.3\r\nno trailing newline"
	writeRepoFile(t, root, "version.txt", content, 0644)
	info, _ := os.Stat(filepath.Join(root, "version.txt"))

	out := New(DirFS{Root: root}).Rewrite(context.Background(), "version.txt", bump)
	if out.Status != Unchanged {
		t.Fatalf("Status = %v, want unchanged", out.Status)
	}
	if got := readRepoFile(t, root, "version.txt"); got != content {
		t.Errorf("content changed: %q", got)
	}
	after, _ := os.Stat(filepath.Join(root, "version.txt"))
	if !after.ModTime().Equal(info.ModTime()) {
		t.Error("unchanged file should not be rewritten")
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeRepoFile(t, root, "config.json", `{"version": "1.2", "min": "1.2"}`, 0644)
	rw := New(DirFS{Root: root})

	if out := rw.Rewrite(context.Background(), "config.json", bump); out.Status != Updated {
		t.Fatalf("first pass Status = %v, want updated", out.Status)
	}
	if out := rw.Rewrite(context.Background(), "config.json", bump); out.Status != Unchanged {
		t.Errorf("second pass Status = %v, want unchanged", out.Status)
	}
}

func TestRewrite_PreservesMode(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeRepoFile(t, root, "bump.sh", "#!/bin/sh\nVERSION=1.2\n", 0755)

	out := New(DirFS{Root: root}).Rewrite(context.Background(), "bump.sh", bump)
	if out.Status != Updated {
		t.Fatalf("Status = %v, want updated", out.Status)
	}
	info, err := os.Stat(filepath.Join(root, "bump.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestRewrite_Skipped(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeRepoFile(t, root, "logo.png", "\x89PNG\x00\x001.2", 0644)
	writeRepoFile(t, root, "latin1.txt", "caf\xe9 = 1.2", 0644)
	if err := os.Mkdir(filepath.Join(root, "dir"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path   string
		reason string
	}{
		{"missing.txt", "file does not exist"},
		{"logo.png", "binary file"},
		{"latin1.txt", "not valid UTF-8 text"},
		{"dir", "read failed"},
		{"../outside.txt", "read failed"},
	}

	rw := New(DirFS{Root: root})
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out := rw.Rewrite(context.Background(), tt.path, bump)
			if out.Status != Skipped {
				t.Fatalf("Status = %v, want skipped", out.Status)
			}
			if out.Reason() != tt.reason {
				t.Errorf("Reason() = %q, want %q", out.Reason(), tt.reason)
			}
			var rwErr *Error
			if !errors.As(out.Err, &rwErr) || rwErr.Path != tt.path {
				t.Errorf("Err = %v, want *rewrite.Error for %s", out.Err, tt.path)
			}
		})
	}
}

func TestRewrite_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	t.Parallel()
	root := t.TempDir()
	writeRepoFile(t, root, "locked.txt", "v=1.2", 0000)

	out := New(DirFS{Root: root}).Rewrite(context.Background(), "locked.txt", bump)
	if out.Status != Skipped || out.Reason() != "permission denied" {
		t.Errorf("got %v / %q, want skipped / permission denied", out.Status, out.Reason())
	}
	if !errors.Is(out.Err, fs.ErrPermission) {
		t.Errorf("Err = %v, want to wrap fs.ErrPermission", out.Err)
	}
}

func TestRewriteAll_ContinuesAfterSkip(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeRepoFile(t, root, "a.txt", "v=1.2", 0644)
	writeRepoFile(t, root, "c.txt", "v=1.3", 0644)

	outs := New(DirFS{Root: root}).RewriteAll(context.Background(), []string{"a.txt", "b.txt", "c.txt"}, bump)
	if len(outs) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outs))
	}
	want := []Status{Updated, Skipped, Unchanged}
	for i, o := range outs {
		if o.Status != want[i] {
			t.Errorf("outcome[%d] (%s) = %v, want %v", i, o.Path, o.Status, want[i])
		}
	}

	updated, unchanged, skipped := Tally(outs)
	if updated != 1 || unchanged != 1 || skipped != 1 {
		t.Errorf("Tally = %d/%d/%d, want 1/1/1", updated, unchanged, skipped)
	}
}

func TestRefFS_ReadsBranchAndKeepsWritesInMemory(t *testing.T) {
	t.Parallel()
	gw := gittest.New().
		Stdout("show origin/feat-a:version.txt", "version = 1.2\n").
		Fail("show origin/feat-a:gone.txt", "fatal: path 'gone.txt' does not exist in 'origin/feat-a'").
		Fail("show origin/feat-a:broken.txt", "fatal: bad object")
	rfs := NewRefFS(gw, "origin/feat-a")
	rw := New(rfs)

	out := rw.Rewrite(context.Background(), "version.txt", bump)
	if out.Status != Updated {
		t.Fatalf("Status = %v, want updated", out.Status)
	}
	if got := string(rfs.Writes["version.txt"]); got != "version = 1.4\n" {
		t.Errorf("recorded write = %q", got)
	}
	// A second pass sees the in-memory write.
	if out := rw.Rewrite(context.Background(), "version.txt", bump); out.Status != Unchanged {
		t.Errorf("second pass Status = %v, want unchanged", out.Status)
	}

	if out := rw.Rewrite(context.Background(), "gone.txt", bump); out.Reason() != "file does not exist" {
		t.Errorf("gone.txt Reason() = %q", out.Reason())
	}
	if out := rw.Rewrite(context.Background(), "broken.txt", bump); out.Reason() != "read failed" {
		t.Errorf("broken.txt Reason() = %q", out.Reason())
	}
}

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()
	if d, err := UnifiedDiff("x", "same\n", "same\n"); err != nil || d != "" {
		t.Errorf("UnifiedDiff(equal) = %q, %v", d, err)
	}

	d, err := UnifiedDiff("pkg/version.go", "package pkg\n\nconst V = \"1.2\"\n", "package pkg\n\nconst V = \"1.4\"\n")
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a/pkg/version.go\n+++ b/pkg/version.go\n@@ -1,3 +1,3 @@\n package pkg\n \n-const V = \"1.2\"\n+const V = \"1.4\"\n"
	if d != want {
		t.Errorf("UnifiedDiff =\n%s\nwant\n%s", d, want)
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()
	late := append(bytes.Repeat([]byte("a"), binarySniffLen), 0)
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"text", []byte("hello"), false},
		{"nul", []byte("he\x00llo"), true},
		{"nul after sniff window", late, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		if got := isBinary(tt.data); got != tt.want {
			t.Errorf("isBinary(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
