// Package matcher scores free-text guesses against a known answer.
// Scoring is pure and deterministic: normalize both strings, then take
// the best of a direct edit-distance ratio and a token-set ratio that
// ignores word order and duplicates.
package matcher

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// articles dropped from the front of a normalized string.
// "The Matrix" and "matrix" must compare equal.
var articles = map[string]bool{
	"the": true,
	"a":   true,
	"an":  true,
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean normalizes a string for comparison: lowercase, diacritics and
// punctuation stripped, whitespace collapsed, leading article dropped.
func Clean(s string) string {
	s = strings.ToLower(s)

	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// everything else (punctuation, symbols) is dropped
	}

	tokens := strings.Fields(b.String())
	if len(tokens) > 1 && articles[tokens[0]] {
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

// Score compares a guess against the correct answer and returns a
// similarity score in [0,100]. A guess that normalizes to the empty
// string scores 0 regardless of the answer.
func Score(answer, guess string) int {
	a := Clean(answer)
	g := Clean(guess)

	if g == "" {
		return 0
	}
	if a == g {
		return 100
	}

	direct := ratio(a, g)
	tokenSet := tokenSetRatio(a, g)
	if tokenSet > direct {
		return tokenSet
	}
	return direct
}

// ratio is the Levenshtein similarity of two strings scaled to 0-100
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (100*(longest-dist) + longest/2) / longest
}

// tokenSetRatio compares the two strings as word sets, so word order
// and repeated words do not matter. Follows the usual token-set
// construction: best ratio among {intersection, intersection+restA,
// intersection+restB} pairings.
func tokenSetRatio(a, b string) int {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var common, onlyA, onlyB []string
	for tok := range setA {
		if setB[tok] {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(common, " ")
	full1 := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	full2 := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	if base == "" {
		return ratio(full1, full2)
	}
	// base against a full string is 100 when one side is a word-subset
	// of the other, which is the point of the token-set variant
	return max3(ratio(base, full1), ratio(base, full2), ratio(full1, full2))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
