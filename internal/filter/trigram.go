// Package filter narrows an ordered list of tracks to those matching a
// text query, using trigram coverage with multi-word support.
package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minCoverage is the fraction of a query word's trigrams an item must
// contain for the word to match.
const minCoverage = 0.4

// Matcher matches a fixed set of texts against queries.
type Matcher struct {
	normalized []string
	trigrams   []map[string]struct{}
}

// NewMatcher creates a matcher for the given texts.
func NewMatcher(texts []string) *Matcher {
	m := &Matcher{
		normalized: make([]string, len(texts)),
		trigrams:   make([]map[string]struct{}, len(texts)),
	}
	for i, text := range texts {
		n := normalize(text)
		m.normalized[i] = n
		m.trigrams[i] = generateTrigrams(n)
	}
	return m
}

// Filter returns the indexes of the texts matching query, in ascending
// order. Every query word must match (AND logic). An empty query matches
// everything.
func (m *Matcher) Filter(query string) []int {
	words := strings.Fields(normalize(query))
	out := make([]int, 0, len(m.normalized))
	if len(words) == 0 {
		for i := range m.normalized {
			out = append(out, i)
		}
		return out
	}

	wordTrigrams := make([]map[string]struct{}, len(words))
	for i, word := range words {
		wordTrigrams[i] = generateTrigrams(word)
	}
	for i := range m.normalized {
		if m.matches(i, words, wordTrigrams) {
			out = append(out, i)
		}
	}
	return out
}

func (m *Matcher) matches(idx int, words []string, wordTrigrams []map[string]struct{}) bool {
	text := m.normalized[idx]
	for i, word := range words {
		// Short words have too few trigrams; use substring match.
		if len([]rune(word)) <= 2 {
			if !strings.Contains(text, word) {
				return false
			}
			continue
		}
		if strings.Contains(text, word) {
			continue
		}
		if trigramCoverage(wordTrigrams[i], m.trigrams[idx]) < minCoverage {
			return false
		}
	}
	return true
}

// normalize lowercases and removes diacritics for matching.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// generateTrigrams creates the set of trigrams for a string.
// Pads with spaces at start/end for better prefix/suffix matching.
func generateTrigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}

	tris := make(map[string]struct{})
	padded := []rune("  " + s + "  ")
	for i := 0; i <= len(padded)-3; i++ {
		tri := string(padded[i : i+3])
		if strings.TrimSpace(tri) != "" {
			tris[tri] = struct{}{}
		}
	}
	return tris
}

// trigramCoverage calculates what fraction of query trigrams are found in the item.
// Returns |A ∩ B| / |A|, which suits partial word matching better than Jaccard.
func trigramCoverage(query, item map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}

	intersection := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			intersection++
		}
	}
	return float64(intersection) / float64(len(query))
}
