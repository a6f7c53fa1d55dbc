package config

import "maps"

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}
	merged := *global
	overlay(&merged, &local.raw)
	return &merged
}

// mergeHooks overlays extra onto a copy of base by hook name.
// A hook with enabled = false removes the hook of the same name.
func mergeHooks(base, extra map[string]Hook) map[string]Hook {
	merged := make(map[string]Hook, len(base)+len(extra))
	maps.Copy(merged, base)

	for name, hook := range extra {
		if !hook.IsEnabled() {
			delete(merged, name)
			continue
		}
		merged[name] = hook
	}
	return merged
}
