// Package analysis holds the token model produced by the external
// text-analysis capability.
package analysis

import "sort"

// Token is a single unit emitted by the analyzer: the analyzed surface form,
// its word ordinal within the source text, and the character offsets of the
// original occurrence. Tokens are produced only by an analyzer and never
// modified afterwards.
type Token struct {
	Text     string
	Position int
	Start    int
	End      int
}

// Dictionary groups token occurrences by analyzed text. Several surface
// forms of the same word collapse onto one key when the analyzer stems, so a
// key maps to an ordered list of occurrences. A Dictionary is built once per
// transcript and discarded with the request.
type Dictionary struct {
	entries map[string][]Token
}

// NewDictionary builds a Dictionary from an analyzer token stream,
// preserving occurrence order within each key.
func NewDictionary(tokens []Token) *Dictionary {
	entries := make(map[string][]Token, len(tokens))
	for _, t := range tokens {
		entries[t.Text] = append(entries[t.Text], t)
	}
	return &Dictionary{entries: entries}
}

// Lookup returns the occurrences recorded under the exact analyzed text.
func (d *Dictionary) Lookup(text string) []Token {
	return d.entries[text]
}

// Keys returns all analyzed texts in sorted order. Sorting keeps prefix
// scans deterministic; it does not change which occurrences match.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct analyzed texts.
func (d *Dictionary) Len() int { return len(d.entries) }
