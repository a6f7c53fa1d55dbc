package processor

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// suggest returns up to three branch names close to name. A candidate
// matches when either name is a fuzzy subsequence of the other.
func suggest(name string, candidates []string) []string {
	scores := make(map[string]int)
	for _, m := range fuzzy.Find(name, candidates) {
		scores[m.Str] = m.Score
	}
	for _, c := range candidates {
		if _, ok := scores[c]; ok || c == name {
			continue
		}
		if ms := fuzzy.Find(c, []string{name}); len(ms) > 0 {
			scores[c] = ms[0].Score
		}
	}
	delete(scores, name)

	out := make([]string, 0, len(scores))
	for c := range scores {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if scores[out[i]] != scores[out[j]] {
			return scores[out[i]] > scores[out[j]]
		}
		return out[i] < out[j]
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// branchNames turns ListBranches output into unique short names with the
// remote prefix removed.
func branchNames(lines []string, remote string) []string {
	seen := make(map[string]bool, len(lines))
	var names []string
	for _, l := range lines {
		if remote != "" {
			l = strings.TrimPrefix(l, remote+"/")
		}
		if l == "HEAD" || l == remote || seen[l] {
			continue
		}
		seen[l] = true
		names = append(names, l)
	}
	return names
}
