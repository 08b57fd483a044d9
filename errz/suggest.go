package errz

import (
	"sort"
	"strings"
)

// MaxSuggestions is the maximum number of names Suggest returns.
const MaxSuggestions = 3

// Suggest returns up to MaxSuggestions candidates within a small edit
// distance of target, closest first and then alphabetically. Names are
// compared case-sensitively, and target itself is never suggested.
func Suggest(target string, candidates []string) []string {
	if target == "" {
		return nil
	}
	threshold := 3
	switch n := len([]rune(target)); {
	case n <= 3:
		threshold = 1
	case n <= 5:
		threshold = 2
	}
	type scored struct {
		name string
		dist int
	}
	var matches []scored
	seen := map[string]bool{}
	for _, c := range candidates {
		if c == "" || c == target || seen[c] {
			continue
		}
		seen[c] = true
		if d := levenshtein(target, c); d <= threshold {
			matches = append(matches, scored{c, d})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > MaxSuggestions {
		matches = matches[:MaxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

func formatSuggestions(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return "; did you mean " + quote(names[0]) + "?"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return "; did you mean one of " + strings.Join(quoted, ", ") + "?"
}

func quote(s string) string {
	return `"` + s + `"`
}

// levenshtein computes the edit distance between a and b over runes, keeping
// two rows of the matrix.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
