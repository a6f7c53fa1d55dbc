package format

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// HighlightDiff colors a unified diff for a terminal with profile p using
// the named chroma style. The diff is returned unchanged when p has no
// colors or highlighting fails.
func HighlightDiff(diff, style string, p colorprofile.Profile) string {
	name := formatterFor(p)
	if name == "" || diff == "" {
		return diff
	}

	lexer := chroma.Coalesce(lexers.Get("diff"))
	if lexer == nil {
		return diff
	}
	st := styles.Get(style)
	if st == nil {
		st = styles.Fallback
	}
	iter, err := lexer.Tokenise(nil, diff)
	if err != nil {
		return diff
	}

	var b strings.Builder
	if err := formatters.Get(name).Format(&b, st, iter); err != nil {
		return diff
	}
	return b.String()
}

// formatterFor maps a color profile to a chroma terminal formatter name.
func formatterFor(p colorprofile.Profile) string {
	switch p {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	}
	return ""
}

// Indent prefixes every non-empty line of s with prefix.
func Indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(l)
	}
	return b.String()
}
