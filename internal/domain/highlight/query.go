// Package highlight computes the transcript character spans a downstream
// highlighter should mark for a given free-form search query. It understands
// plain terms, negated terms (-term), prefix wildcards (term*) and quoted
// phrases ("a b"). It deliberately mirrors the literal semantics of the
// archive's search syntax rather than the index engine's own parser; known
// divergences are documented on the functions that carry them.
package highlight

import "strings"

// termBreaks are the characters that separate terms in a query.
const termBreaks = " \t\r\n+|()"

// specialChars trigger full query parsing; a query without any of them is
// treated wholesale as exact terms.
const specialChars = `*-"`

// Query is a raw search query classified into its match criteria.
type Query struct {
	// Phrases are the trimmed inner texts of non-negated quoted segments,
	// in query order.
	Phrases []string
	// ExactTerms is the space-joined list of plain terms.
	ExactTerms string
	// PrefixTerms are terms that ended in '*', with the star stripped.
	PrefixTerms []string
}

// ParseQuery extracts phrases and classifies terms from a raw query.
// Negated terms and phrases are dropped and leave no trace. A query with no
// special characters short-circuits: the whole string becomes ExactTerms,
// which is equivalent to running the full pass.
func ParseQuery(raw string) Query {
	if !strings.ContainsAny(raw, specialChars) {
		return Query{ExactTerms: raw}
	}
	residual, phrases := extractPhrases(raw)
	exact, prefixes := classifyTerms(residual)
	return Query{Phrases: phrases, ExactTerms: exact, PrefixTerms: prefixes}
}

func isTermBreak(c byte) bool {
	return strings.IndexByte(termBreaks, c) >= 0
}

// scanState drives the phrase extraction state machine.
type scanState int

const (
	// scanning walks plain query text looking for an opening quote.
	scanning scanState = iota
	// inPhrase has seen an opening quote and walks toward the closing one.
	inPhrase
)

// extractPhrases strips quoted phrases out of the raw query. It returns the
// residual non-phrase text and the surviving phrase list.
//
// A quote that never closes truncates extraction: text already scanned before
// the orphan quote stays in the residual, the quote and everything after it
// are dropped. A phrase whose opening quote is preceded by '-' at a term
// boundary is negated and disappears along with its minus sign. Empty quotes
// are consumed without producing a phrase.
func extractPhrases(raw string) (string, []string) {
	var residual strings.Builder
	var phrases []string

	state := scanning
	segStart := 0 // residual text accumulates from here
	openIdx := 0  // index of the opening quote while inPhrase

	for i := 0; i < len(raw); i++ {
		if raw[i] != '"' {
			continue
		}
		switch state {
		case scanning:
			openIdx = i
			state = inPhrase
		case inPhrase:
			if negatesPhrase(raw, openIdx) {
				// Drop the minus sign together with the phrase.
				residual.WriteString(raw[segStart : openIdx-1])
			} else {
				residual.WriteString(raw[segStart:openIdx])
				if inner := strings.TrimSpace(raw[openIdx+1 : i]); inner != "" {
					phrases = append(phrases, inner)
				}
			}
			segStart = i + 1
			state = scanning
		}
	}

	switch state {
	case inPhrase:
		// Unpaired quote: keep what came before it, discard the rest.
		residual.WriteString(raw[segStart:openIdx])
	case scanning:
		residual.WriteString(raw[segStart:])
	}

	return residual.String(), phrases
}

// negatesPhrase reports whether the quote at openIdx is preceded by a '-'
// that sits at the start of the query or right after a term break.
func negatesPhrase(raw string, openIdx int) bool {
	if openIdx == 0 || raw[openIdx-1] != '-' {
		return false
	}
	return openIdx-1 == 0 || isTermBreak(raw[openIdx-2])
}

// classifyTerms splits the residual query on term breaks and buckets the
// surviving tokens: negated terms are discarded, '*'-suffixed terms become
// prefixes, everything else joins the exact-term string.
func classifyTerms(residual string) (string, []string) {
	var exact []string
	var prefixes []string

	fields := strings.FieldsFunc(residual, func(r rune) bool {
		return r < 0x80 && isTermBreak(byte(r))
	})
	for _, field := range fields {
		switch {
		case strings.HasPrefix(field, "-"):
			// negated single term
		case strings.HasSuffix(field, "*"):
			prefixes = append(prefixes, strings.TrimSuffix(field, "*"))
		default:
			exact = append(exact, field)
		}
	}

	return strings.Join(exact, " "), prefixes
}
