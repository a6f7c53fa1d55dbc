package hooks

import (
	"fmt"
	"io"
	"maps"
	"os/exec"
	"regexp"
	"slices"
	"strings"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/ui/styles"
)

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	// e.g., "it's" becomes 'it'\''s'
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Trigger is the branch outcome a hook runs on.
type Trigger string

const (
	TriggerSuccess Trigger = "success"
	TriggerFailure Trigger = "failure"
)

// Context holds the values for placeholder substitution
type Context struct {
	Branch string            // branch name
	Old    string            // value that was replaced
	New    string            // replacement value
	Status string            // succeeded or failed
	Reason string            // failure reason
	Repo   string            // repository folder name
	Path   string            // repository root, also the working directory
	Env    map[string]string // custom variables from --arg key=value
	DryRun bool              // if true, print command instead of executing
}

// HookMatch represents a hook that matched the current branch outcome
type HookMatch struct {
	Hook config.Hook
	Name string
}

// SelectHooks determines which hooks to run based on config and CLI flags.
// If hookName is specified, only that hook runs. Otherwise, all hooks whose
// "on" list matches trigger run, ordered by name.
// Returns an error if the named hook doesn't exist.
func SelectHooks(hooks map[string]config.Hook, hookName string, noHook bool, trigger Trigger) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	// An explicit hook ignores its "on" condition
	if hookName != "" {
		hook, exists := hooks[hookName]
		if !exists {
			return nil, fmt.Errorf("unknown hook %q", hookName)
		}
		return []HookMatch{{Hook: hook, Name: hookName}}, nil
	}

	return findMatchingHooks(hooks, trigger), nil
}

// findMatchingHooks returns all hooks that have trigger in their "on" list.
// Hooks without "on" are skipped (they only run via explicit --hook=name).
func findMatchingHooks(hooks map[string]config.Hook, trigger Trigger) []HookMatch {
	var matches []HookMatch
	for _, name := range slices.Sorted(maps.Keys(hooks)) {
		hook := hooks[name]
		if len(hook.On) > 0 && hookMatches(hook, trigger) {
			matches = append(matches, HookMatch{Hook: hook, Name: name})
		}
	}
	return matches
}

// hookMatches returns true if trigger is in the hook's "on" list.
// Special value "all" matches every trigger.
func hookMatches(hook config.Hook, trigger Trigger) bool {
	for _, on := range hook.On {
		if on == "all" || on == string(trigger) {
			return true
		}
	}
	return false
}

// RunForEach runs all matched hooks for a single branch. Failures are
// written to out as warnings with branch context.
func RunForEach(matches []HookMatch, hc Context, out io.Writer) {
	for _, match := range matches {
		if err := runHook(match.Name, match.Hook, hc, out); err != nil {
			fmt.Fprintf(out, "    %s\n", styles.Warn(fmt.Sprintf("hook %q failed for %s: %v", match.Name, hc.Branch, err)))
		}
	}
}

// runHook executes a single hook with placeholder substitution.
func runHook(name string, hook config.Hook, hc Context, out io.Writer) error {
	command := SubstitutePlaceholders(hook.Command, hc)

	if hc.DryRun {
		fmt.Fprintf(out, "    would run hook %s: %s\n", name, styles.Command(command))
		return nil
	}

	fmt.Fprintf(out, "    running hook %s\n", name)

	sh := exec.Command("sh", "-c", command)
	sh.Dir = hc.Path
	sh.Stdout = out
	sh.Stderr = out

	if err := sh.Run(); err != nil {
		return err
	}

	if hook.Description != "" {
		fmt.Fprintf(out, "    %s\n", styles.OK(hook.Description))
	}
	return nil
}

// ParseEnv parses a slice of "key=value" strings into a map.
// Returns an error if any entry doesn't contain "=".
func ParseEnv(envSlice []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, e := range envSlice {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid arg format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid arg format %q: key cannot be empty", e)
		}
		result[key] = value
	}
	return result, nil
}

// placeholderRegex matches {key}, {key:raw} or {key:-default}.
var placeholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_-]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces placeholders with shell-quoted values.
// Static placeholders take precedence over --arg values of the same name.
// Unknown keys expand to their default, or to an empty string.
// Substitution is a single pass, so braces inside values are never expanded.
func SubstitutePlaceholders(command string, hc Context) string {
	static := map[string]string{
		"branch": hc.Branch,
		"old":    hc.Old,
		"new":    hc.New,
		"status": hc.Status,
		"reason": hc.Reason,
		"repo":   hc.Repo,
		"path":   hc.Path,
	}

	return placeholderRegex.ReplaceAllStringFunc(command, func(match string) string {
		sub := placeholderRegex.FindStringSubmatch(match)
		key, isRaw, value := sub[1], sub[2] == ":raw", sub[3]

		if v, ok := static[key]; ok {
			value = v
		} else if v, ok := hc.Env[key]; ok {
			value = v
		}

		if isRaw {
			return value
		}
		return shellQuote(value)
	})
}
