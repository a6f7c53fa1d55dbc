package format

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultCommitMessage is the default commit message template
const DefaultCommitMessage = "Update {old} → {new} in branch files"

// ValidPlaceholders lists all supported placeholders
var ValidPlaceholders = []string{"{old}", "{new}", "{branch}"}

// placeholderRegex matches {placeholder-name} patterns
var placeholderRegex = regexp.MustCompile(`\{[a-z-]+\}`)

// ValidateMessage checks if a commit message template is valid.
// Returns error if it is blank or contains unknown placeholders.
func ValidateMessage(tmpl string) error {
	if strings.TrimSpace(tmpl) == "" {
		return fmt.Errorf("commit message must not be empty")
	}
	for _, match := range placeholderRegex.FindAllString(tmpl, -1) {
		if !isValidPlaceholder(match) {
			return fmt.Errorf("unknown placeholder %q in commit message %q (valid: %s)",
				match, tmpl, strings.Join(ValidPlaceholders, ", "))
		}
	}
	return nil
}

func isValidPlaceholder(placeholder string) bool {
	for _, valid := range ValidPlaceholders {
		if placeholder == valid {
			return true
		}
	}
	return false
}

// MessageParams contains the values for placeholder substitution
type MessageParams struct {
	Old    string
	New    string
	Branch string
}

// CommitMessage applies the template to generate a commit message
func CommitMessage(tmpl string, params MessageParams) string {
	return strings.NewReplacer(
		"{old}", params.Old,
		"{new}", params.New,
		"{branch}", params.Branch,
	).Replace(tmpl)
}
