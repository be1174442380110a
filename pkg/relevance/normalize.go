// FILE: pkg/relevance/normalize.go
// PURPOSE: Text normalization and query tokenization

package relevance

import (
	"strings"
	"unicode"
)

var stopWords = setOf(
	"a", "an", "the", "and", "or", "of", "to", "in", "on", "at", "for", "with",
	"is", "are", "be", "me", "my", "i", "we", "us", "our", "you", "some", "any",
	"show", "find", "get", "give", "want", "need", "looking", "look", "like",
	"please", "can", "could", "would", "should", "near", "around", "from",
	"options", "place", "places", "restaurant", "restaurants", "good", "best",
	"order", "something", "food", "under", "below", "within", "than", "less",
	"rs", "inr", "min", "mins", "minutes", "people", "also", "that", "this",
)

// Normalize lowercases text, keeps letters, digits and the rupee sign, and
// collapses everything else into single spaces.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '₹' {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize returns the distinct, stop-word-filtered terms of query in order.
func Tokenize(query string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, w := range strings.Fields(Normalize(query)) {
		w = strings.TrimPrefix(w, "₹")
		if len([]rune(w)) < 2 || stopWords[w] || seen[w] || isDigits(w) {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}

// containsPhrase matches phrase on word boundaries of normalized text.
func containsPhrase(text, phrase string) bool {
	if phrase == "" || text == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}

func containsAnyPhrase(text string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(text, p) {
			return true
		}
	}
	return false
}

// countTerms counts how many terms occur as substrings of text.
func countTerms(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
