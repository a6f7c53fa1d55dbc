package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LocalConfigFileName is the per-repo config file at the repository root.
const LocalConfigFileName = ".rebump.toml"

// LocalConfig holds per-repo overrides from .rebump.toml.
// Unset keys inherit from the global config.
type LocalConfig struct {
	raw  rawConfig
	Path string
}

// LoadLocal reads .rebump.toml from the given repo root.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoRoot string) (*LocalConfig, error) {
	path := filepath.Join(repoRoot, LocalConfigFileName)
	raw, found, err := readRaw(path)
	if err != nil || !found {
		return nil, err
	}

	local := &LocalConfig{raw: *raw, Path: path}

	// Validate the overrides on their own so errors point at the local file.
	probe := Default()
	overlay(&probe, raw)
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return local, nil
}

// defaultLocalConfig is the template for rebump config init --local
const defaultLocalConfig = `# rebump local config (per-repo overrides)
# Place this file at the root of the repository as .rebump.toml.
# Settings here override the global config for this repo only.

# main_branch = "develop"
# remote = "upstream"
# base_ref = "remote"
# push = false
# commit_message = "chore: bump {old} to {new}"
# forge = "gitlab"

# Hooks merge by name with the global ones; enabled = false removes one.
# [hooks.notify]
# enabled = false
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// Sets reports whether the local file sets the given dotted key.
// A nil LocalConfig sets nothing.
func (l *LocalConfig) Sets(key string) bool {
	if l == nil {
		return false
	}
	r := l.raw
	switch key {
	case "main_branch":
		return r.MainBranch != ""
	case "remote":
		return r.Remote != ""
	case "base_ref":
		return r.BaseRef != ""
	case "push":
		return r.Push != nil
	case "commit_message":
		return r.CommitMessage != ""
	case "forge":
		return r.Forge != ""
	case "prompt.confirm":
		return r.Prompt.Confirm != nil
	case "diff.style":
		return r.Diff.Style != ""
	case "diff.color":
		return r.Diff.Color != nil
	}
	if name, ok := strings.CutPrefix(key, "hooks."); ok {
		_, set := r.Hooks[name]
		return set
	}
	return false
}
