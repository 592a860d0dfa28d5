package highlight

import "sort"

// Span is one matched transcript location by character offset. End is
// whatever the contributing record reported: inclusive for phrase matches,
// analyzer-native for token matches.
type Span struct {
	Start int
	End   int
}

// Merger combines phrase and term matches into one position-keyed set.
//
// Positions live in two different spaces: phrase matches are keyed by
// character index, token matches by the analyzer's word ordinal. The archive
// has always merged the two spaces into one map and output depends on it, so
// the mismatch is kept here, in one place, rather than normalized.
type Merger struct {
	byPos map[int]Span
}

// NewMerger creates an empty merge set.
func NewMerger() *Merger {
	return &Merger{byPos: make(map[int]Span)}
}

// Add records a span at a position unless the position is already taken.
// Processing order (phrases, then exact terms, then prefix terms) therefore
// fixes precedence: the first writer wins.
func (m *Merger) Add(position int, s Span) {
	if _, taken := m.byPos[position]; taken {
		return
	}
	m.byPos[position] = s
}

// Len returns the number of occupied positions.
func (m *Merger) Len() int { return len(m.byPos) }

// Spans emits the merged spans in ascending position order. At most one span
// per position by construction.
func (m *Merger) Spans() []Span {
	positions := make([]int, 0, len(m.byPos))
	for p := range m.byPos {
		positions = append(positions, p)
	}
	sort.Ints(positions)

	spans := make([]Span, 0, len(positions))
	for _, p := range positions {
		spans = append(spans, m.byPos[p])
	}
	return spans
}
