package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/raphi011/rebump/internal/format"
)

// Valid enum values for configuration fields.
var (
	ValidBaseRefs     = []string{"remote", "local"}
	ValidHookTriggers = []string{"success", "failure", "all"}
	ValidForges       = []string{"github", "gitlab"}
)

// Validate checks every field that has constraints.
func (c *Config) Validate() error {
	if err := validateEnum(c.BaseRef, "base_ref", ValidBaseRefs); err != nil {
		return err
	}
	if err := validateEnum(c.Forge, "forge", ValidForges); err != nil {
		return err
	}
	if strings.TrimSpace(c.MainBranch) == "" {
		return errors.New("main_branch must not be empty")
	}
	if err := format.ValidateMessage(c.CommitMessage); err != nil {
		return fmt.Errorf("commit_message: %w", err)
	}
	if c.Diff.Style != "" && !slices.Contains(styles.Names(), c.Diff.Style) {
		return fmt.Errorf("unknown diff.style %q (see https://xyproto.github.io/splash/docs/)", c.Diff.Style)
	}
	for _, name := range slices.Sorted(maps.Keys(c.Hooks)) {
		hook := c.Hooks[name]
		if strings.TrimSpace(hook.Command) == "" {
			return fmt.Errorf("hooks.%s: command must not be empty", name)
		}
		for _, on := range hook.On {
			if err := validateEnum(on, "hooks."+name+".on value", ValidHookTriggers); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateBaseRef validates a base ref value against ValidBaseRefs.
// Exported for use in CLI flag validation.
func ValidateBaseRef(value string) error {
	return validateEnum(value, "base-ref", ValidBaseRefs)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
