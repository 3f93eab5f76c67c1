package substitute

import "regexp"

var placeholderPattern = regexp.MustCompile(`<!--\{\{[^{}]*\}\}-->`)

// Unresolved returns the distinct placeholder tokens left in s, in order of
// first occurrence.
func Unresolved(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllString(s, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
