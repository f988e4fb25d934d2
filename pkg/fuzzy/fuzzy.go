package fuzzy

import (
	"strings"
	"unicode"
)

// LevenshteinDistance calculates the edit distance between two strings
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalizeString(s1)
	s2 = normalizeString(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+cost,
			)
		}
	}

	return d[m][n]
}

// Score rates how well query matches text, 0.0 (no match) to 1.0 (exact).
// A query matching a substring of the text scores highly; otherwise the best
// per-word edit distance decides.
func Score(query, text string) float64 {
	query = normalizeString(query)
	text = normalizeString(text)
	if query == "" || text == "" {
		return 0
	}
	if query == text {
		return 1
	}
	if strings.Contains(text, query) {
		return 0.9
	}

	best := 0.0
	for _, word := range strings.Fields(text) {
		dist := LevenshteinDistance(query, word)
		longest := len([]rune(query))
		if l := len([]rune(word)); l > longest {
			longest = l
		}
		score := 1.0 - float64(dist)/float64(longest)
		if score > best {
			best = score
		}
	}
	return best
}

// Matches reports whether query matches text above the given threshold.
// A multi-word query matches when every word matches.
func Matches(query, text string, threshold float64) bool {
	words := strings.Fields(normalizeString(query))
	if len(words) == 0 {
		return false
	}
	for _, word := range words {
		if Score(word, text) < threshold {
			return false
		}
	}
	return true
}

// normalizeString lowercases and strips accents for better matching
func normalizeString(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
