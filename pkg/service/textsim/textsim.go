// Package textsim provides the word-set and character-sequence similarity
// primitives shared by the lexical search index and the listing scorer.
package textsim

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// WordSet tokenizes text into a case-folded word set. Trailing plural "s"
// is folded so "apartments" and "apartment" land on the same key.
func WordSet(text string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[singular(w)] = struct{}{}
	}
	return set
}

// singular strips a trailing plural "s" from words longer than three
// characters. Words ending in "ss" keep their form.
func singular(w string) string {
	if len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
		return w[:len(w)-1]
	}
	return w
}

// Jaccard returns |a∩b| / |a∪b| for two word sets, and 0 when either set
// is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	overlap := 0
	for w := range a {
		if _, ok := b[w]; ok {
			overlap++
		}
	}
	union := len(a) + len(b) - overlap
	return float64(overlap) / float64(union)
}

// SequenceRatio returns a similarity in [0,1] between two strings based on
// the total length M of their non-overlapping common substrings, computed
// as 2*M / (len(a)+len(b)). Both strings are compared as-is; callers fold
// case beforehand when they want case-insensitive comparison.
func SequenceRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	m := matchTotal(a, b)
	return 2 * float64(m) / float64(len(a)+len(b))
}

// matchTotal sums the lengths of matching blocks: the longest common
// substring, then recursively the longest matches to its left and right.
func matchTotal(a, b string) int {
	size, ai, bi := longestCommon(a, b)
	if size == 0 {
		return 0
	}
	return size + matchTotal(a[:ai], b[:bi]) + matchTotal(a[ai+size:], b[bi+size:])
}

// longestCommon finds the longest common substring of a and b, returning
// its length and start offsets. Uses a two-row dynamic program.
func longestCommon(a, b string) (size, ai, bi int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > size {
					size = curr[j]
					ai = i - size
					bi = j - size
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return size, ai, bi
}
