package util

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// Suggest returns up to n candidates that fuzzily match input, best first.
// An empty input returns the first n candidates unchanged; n <= 0 means no limit.
func Suggest(input string, candidates []string, n int) []string {
	if input == "" {
		return limit(candidates, n)
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}
	// fuzzy.Find sorts by score; keep catalog order among equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return limit(out, n)
}

func limit(s []string, n int) []string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
