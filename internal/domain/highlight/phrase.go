package highlight

import (
	"regexp"
	"strings"
)

// PhraseMatch is one occurrence of a quoted phrase in the raw transcript.
// Position and the span are both character indices into the transcript; End
// is inclusive.
type PhraseMatch struct {
	Position int
	Start    int
	End      int
}

// MatchPhrases scans the raw transcript for contiguous occurrences of each
// phrase. Matching is literal and case-insensitive: words must appear in
// order separated only by non-word characters, so stemmed variants never
// match here. The boundary after the final word is not required, which lets
// a phrase match mid-word at its tail exactly like the archive always has.
func MatchPhrases(transcript string, phrases []string) []PhraseMatch {
	var matches []PhraseMatch
	for _, phrase := range phrases {
		re, err := phrasePattern(phrase)
		if err != nil || re == nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(transcript, -1) {
			matches = append(matches, PhraseMatch{
				Position: loc[0],
				Start:    loc[0],
				End:      loc[1] - 1,
			})
		}
	}
	return matches
}

// phrasePattern compiles "w1 w2 w3" into (?i)w1\W+w2\W+w3.
func phrasePattern(phrase string) (*regexp.Regexp, error) {
	var words []string
	for _, w := range strings.Split(phrase, " ") {
		if w != "" {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	if len(words) == 0 {
		return nil, nil
	}
	return regexp.Compile(`(?i)` + strings.Join(words, `\W+`))
}
