package highlight

import (
	"reflect"
	"testing"
)

func TestMatchPhrasesBasic(t *testing.T) {
	transcript := "The Buffalo Bills play in Buffalo."

	got := MatchPhrases(transcript, []string{"buffalo bills"})

	want := []PhraseMatch{{Position: 4, Start: 4, End: 16}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchPhrases = %v, want %v", got, want)
	}
}

func TestMatchPhrasesCaseInsensitive(t *testing.T) {
	got := MatchPhrases("WAR BONDS were sold", []string{"war bonds"})

	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if got[0].Start != 0 || got[0].End != 8 {
		t.Errorf("span = [%d,%d], want [0,8]", got[0].Start, got[0].End)
	}
}

func TestMatchPhrasesSeparators(t *testing.T) {
	// Any run of non-word characters joins the phrase words.
	tests := []struct {
		name       string
		transcript string
		matches    int
	}{
		{"single space", "buffalo bills", 1},
		{"comma and space", "buffalo, bills", 1},
		{"newline", "buffalo\nbills", 1},
		{"multiple separators", "buffalo -- bills", 1},
		{"intervening word", "buffalo big bills", 0},
		{"no separator", "buffalobills", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchPhrases(tt.transcript, []string{"buffalo bills"})
			if len(got) != tt.matches {
				t.Errorf("got %d matches, want %d", len(got), tt.matches)
			}
		})
	}
}

func TestMatchPhrasesTailBoundaryNotRequired(t *testing.T) {
	// The final word may continue: "buffalo bill" matches inside
	// "buffalo bills".
	got := MatchPhrases("the buffalo bills", []string{"buffalo bill"})

	want := []PhraseMatch{{Position: 4, Start: 4, End: 15}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchPhrases = %v, want %v", got, want)
	}
}

func TestMatchPhrasesMultipleOccurrences(t *testing.T) {
	got := MatchPhrases("war bonds, more war bonds", []string{"war bonds"})

	want := []PhraseMatch{
		{Position: 0, Start: 0, End: 8},
		{Position: 16, Start: 16, End: 24},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchPhrases = %v, want %v", got, want)
	}
}

func TestMatchPhrasesLiteralMetacharacters(t *testing.T) {
	// Regex metacharacters in the phrase are matched literally.
	got := MatchPhrases("cost was $5.00 total", []string{"$5.00 total"})

	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if got[0].Start != 9 {
		t.Errorf("Start = %d, want 9", got[0].Start)
	}
}

func TestMatchPhrasesNoStemming(t *testing.T) {
	// Phrase matching is literal: inflected forms never match.
	got := MatchPhrases("they were running fast", []string{"runs fast"})

	if len(got) != 0 {
		t.Errorf("got %v, want no matches", got)
	}
}

func TestMatchPhrasesEmptyInputs(t *testing.T) {
	if got := MatchPhrases("some text", nil); len(got) != 0 {
		t.Errorf("nil phrases: got %v", got)
	}
	if got := MatchPhrases("some text", []string{"", "   "}); len(got) != 0 {
		t.Errorf("blank phrases: got %v", got)
	}
	if got := MatchPhrases("", []string{"war bonds"}); len(got) != 0 {
		t.Errorf("empty transcript: got %v", got)
	}
}
