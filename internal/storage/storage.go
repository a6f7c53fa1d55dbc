// Package storage provides atomic file writes.
//
// Rewritten repository files and generated config files are replaced in one
// rename, so an interrupted run never leaves a half-written file behind.
package storage

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path with the given permission bits.
// It writes to a temp file in the same directory, then renames it over path.
// A symlink at path is followed so the link itself survives.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if resolved, evalErr := filepath.EvalSymlinks(path); evalErr == nil {
		path = resolved
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
