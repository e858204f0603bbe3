// Package search implements the subsequence filter applied to
// directory listings and the history view.
package search

import "unicode"

// Matches reports whether pattern occurs as a case-insensitive
// subsequence of text: every pattern character must appear in text in
// order, not necessarily contiguously. An empty pattern matches
// everything. Pure function, no filesystem or cache state.
func Matches(text, pattern string) bool {
	if pattern == "" {
		return true
	}

	want := []rune(pattern)
	next := 0
	for _, r := range text {
		if foldEq(r, want[next]) {
			next++
			if next == len(want) {
				return true
			}
		}
	}
	return false
}

func foldEq(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}
