package match

import (
	"slices"
	"strings"
)

// Levenshtein computes the edit distance between two strings, counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// Two rows over the shorter string.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// NormalizeIdent lowercases s and drops '_', '-', '.' and spaces.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', '.', ' ':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Suggest returns up to limit candidates close to name, closest first.
// Names that differ only in case or separators rank first.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name string
		dist int
	}

	norm := NormalizeIdent(name)
	threshold := max(2, len([]rune(norm))/3)

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		d := Levenshtein(norm, NormalizeIdent(c))
		if d <= threshold {
			hits = append(hits, scored{name: c, dist: d})
		}
	}

	slices.SortFunc(hits, func(x, y scored) int {
		if x.dist != y.dist {
			return x.dist - y.dist
		}

		return strings.Compare(x.name, y.name)
	})

	out := make([]string, 0, min(limit, len(hits)))
	for i := 0; i < len(hits) && i < limit; i++ {
		out = append(out, hits[i].name)
	}

	return out
}
