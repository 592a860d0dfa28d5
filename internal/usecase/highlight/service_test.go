package highlight

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/reelvault/reelsearch/internal/domain"
	"github.com/reelvault/reelsearch/internal/domain/analysis"
	domhl "github.com/reelvault/reelsearch/internal/domain/highlight"
)

// --- Mocks ---

// mockAnalyzer returns canned token streams per input text. Calls arrive
// concurrently, so bookkeeping is locked.
type mockAnalyzer struct {
	mu      sync.Mutex
	streams map[string][]analysis.Token
	err     error
	calls   int
}

func (m *mockAnalyzer) Analyze(_ context.Context, text string) ([]analysis.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.streams[text], nil
}

func (m *mockAnalyzer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

const transcript = "The Buffalo Bills play in Buffalo."

// transcriptTokens is what an english analyzer would emit for transcript:
// stemmed, lowercased, stopwords kept out.
var transcriptTokens = []analysis.Token{
	{Text: "buffalo", Position: 2, Start: 4, End: 11},
	{Text: "bill", Position: 3, Start: 12, End: 17},
	{Text: "play", Position: 4, Start: 18, End: 22},
	{Text: "buffalo", Position: 6, Start: 26, End: 33},
}

func newMock() *mockAnalyzer {
	return &mockAnalyzer{streams: map[string][]analysis.Token{
		transcript: transcriptTokens,
		"bills":    {{Text: "bill", Position: 1, Start: 0, End: 5}},
		"played":   {{Text: "play", Position: 1, Start: 0, End: 6}},
		"zebra":    {{Text: "zebra", Position: 1, Start: 0, End: 5}},
	}}
}

func TestFindMatchesBlankInputs(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		transcript string
	}{
		{"blank query", "   ", transcript},
		{"blank transcript", "bills", "  \t\n"},
		{"both blank", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMock()
			svc := New(m)

			got, err := svc.FindMatches(context.Background(), tt.query, tt.transcript)
			if err != nil {
				t.Fatalf("FindMatches: %v", err)
			}
			if got == nil {
				t.Fatal("got nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("spans = %v, want empty", got)
			}
			if m.callCount() != 0 {
				t.Errorf("analyzer called %d times, want 0", m.callCount())
			}
		})
	}
}

func TestFindMatchesExactTermStemming(t *testing.T) {
	m := newMock()
	svc := New(m)

	// "bills" stems to "bill" on both sides, so the single transcript
	// occurrence of "Bills" matches.
	got, err := svc.FindMatches(context.Background(), "bills", transcript)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	want := []domhl.Span{{Start: 12, End: 17}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("spans = %v, want %v", got, want)
	}
	// Transcript plus terms: two analyzer calls.
	if m.callCount() != 2 {
		t.Errorf("analyzer called %d times, want 2", m.callCount())
	}
}

func TestFindMatchesPrefixTerm(t *testing.T) {
	m := newMock()
	svc := New(m)

	got, err := svc.FindMatches(context.Background(), "buff*", transcript)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	// Both "buffalo" occurrences, ascending by position.
	want := []domhl.Span{{Start: 4, End: 11}, {Start: 26, End: 33}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("spans = %v, want %v", got, want)
	}
	// Prefix-only query analyzes the transcript but not the terms.
	if m.callCount() != 1 {
		t.Errorf("analyzer called %d times, want 1", m.callCount())
	}
}

func TestFindMatchesPrefixIsCaseSensitive(t *testing.T) {
	m := &mockAnalyzer{streams: map[string][]analysis.Token{
		"Buffalo roam": {{Text: "Buffalo", Position: 1, Start: 0, End: 7}},
	}}
	svc := New(m)

	// The dictionary key keeps whatever case the analyzer emitted; the
	// prefix test is a plain byte comparison.
	got, err := svc.FindMatches(context.Background(), "buff*", "Buffalo roam")
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("spans = %v, want none for case-mismatched prefix", got)
	}
}

func TestFindMatchesPhraseOnly(t *testing.T) {
	m := newMock()
	svc := New(m)

	got, err := svc.FindMatches(context.Background(), `"buffalo bills"`, transcript)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	// Raw-text match over "Buffalo Bills", inclusive end.
	want := []domhl.Span{{Start: 4, End: 16}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("spans = %v, want %v", got, want)
	}
	// Phrases never touch the analyzer.
	if m.callCount() != 0 {
		t.Errorf("analyzer called %d times, want 0", m.callCount())
	}
}

func TestFindMatchesMixedQuery(t *testing.T) {
	m := newMock()
	svc := New(m)

	got, err := svc.FindMatches(context.Background(), `"buffalo bills" played`, transcript)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	// Phrase at char position 4, term "play" at word ordinal 4: the phrase
	// wrote position 4 first, so the term occurrence is suppressed.
	want := []domhl.Span{{Start: 4, End: 16}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("spans = %v, want %v", got, want)
	}
}

func TestFindMatchesAnalyzerFailure(t *testing.T) {
	m := newMock()
	m.err = errors.New("backend down")
	svc := New(m)

	got, err := svc.FindMatches(context.Background(), "bills", transcript)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrAnalysisFailed) {
		t.Errorf("error %v does not wrap ErrAnalysisFailed", err)
	}
	if got != nil {
		t.Errorf("spans = %v, want nil on error", got)
	}
}

func TestFindMatchesNoHits(t *testing.T) {
	m := newMock()
	svc := New(m)

	got, err := svc.FindMatches(context.Background(), "zebra", transcript)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("spans = %v, want empty slice", got)
	}
}

func TestFindMatchesIdempotent(t *testing.T) {
	m := newMock()
	svc := New(m)

	query := `"buffalo bills" bills buff*`
	first, err := svc.FindMatches(context.Background(), query, transcript)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := svc.FindMatches(context.Background(), query, transcript)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: spans = %v, want %v", i, got, first)
		}
	}
}

func TestFindMatchesConcurrent(t *testing.T) {
	m := newMock()
	svc := New(m)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.FindMatches(context.Background(), "bills buff*", transcript); err != nil {
				t.Errorf("FindMatches: %v", err)
			}
		}()
	}
	wg.Wait()
}
