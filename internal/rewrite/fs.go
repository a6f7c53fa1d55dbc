package rewrite

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/storage"
)

// FileSystem reads and writes repository files by repo-relative path.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
}

// DirFS reads and writes files in a working tree rooted at Root.
type DirFS struct {
	Root string
}

func (d DirFS) resolve(path string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return "", fmt.Errorf("path %q escapes the repository", path)
	}
	return filepath.Join(d.Root, filepath.FromSlash(path)), nil
}

func (d DirFS) ReadFile(_ context.Context, path string) ([]byte, error) {
	full, err := d.resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return os.ReadFile(full)
}

// WriteFile atomically replaces the file content, keeping its permission bits.
func (d DirFS) WriteFile(_ context.Context, path string, data []byte) error {
	full, err := d.resolve(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(full)
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(full, data, info.Mode().Perm())
}

// RefFS reads file content from a git ref and keeps writes in memory.
// It never touches the working tree, which makes it suitable for dry runs.
type RefFS struct {
	Gateway git.Gateway
	Ref     string
	Writes  map[string][]byte
}

// NewRefFS returns a RefFS reading from ref.
func NewRefFS(gw git.Gateway, ref string) *RefFS {
	return &RefFS{Gateway: gw, Ref: ref, Writes: make(map[string][]byte)}
}

func (r *RefFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if data, ok := r.Writes[path]; ok {
		return data, nil
	}
	res := r.Gateway.ShowFile(ctx, r.Ref, path)
	if !res.OK() {
		msg := strings.TrimSpace(res.Stderr)
		if strings.Contains(msg, "does not exist") || strings.Contains(msg, "exists on disk, but not in") {
			return nil, fmt.Errorf("%s at %s: %w", path, r.Ref, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s at %s: %w", path, r.Ref, res.Err())
	}
	return []byte(res.Stdout), nil
}

func (r *RefFS) WriteFile(_ context.Context, path string, data []byte) error {
	r.Writes[path] = data
	return nil
}
