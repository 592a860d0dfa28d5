// Package result models search hits returned to the transport layer.
package result

import "github.com/reelvault/reelsearch/internal/domain/highlight"

// Hit is a single search result.
type Hit struct {
	id         string
	score      float64
	title      string
	speaker    string
	collection string
	year       int
	transcript string
	spans      []highlight.Span
}

// New creates a search hit.
func New(id string, score float64, title, speaker, collection string, year int, transcript string) Hit {
	return Hit{
		id: id, score: score, title: title, speaker: speaker,
		collection: collection, year: year, transcript: transcript,
	}
}

// ID returns the story identifier.
func (h *Hit) ID() string { return h.id }

// Score returns the index relevance score.
func (h *Hit) Score() float64 { return h.score }

// Title returns the story title.
func (h *Hit) Title() string { return h.title }

// Speaker returns the interviewee name.
func (h *Hit) Speaker() string { return h.speaker }

// Collection returns the owning collection tag.
func (h *Hit) Collection() string { return h.collection }

// Year returns the recording year.
func (h *Hit) Year() int { return h.year }

// Transcript returns the stored transcript text.
func (h *Hit) Transcript() string { return h.transcript }

// Spans returns the transcript highlight spans, if computed.
func (h *Hit) Spans() []highlight.Span { return h.spans }

// WithSpans returns a copy carrying the given highlight spans.
func (h Hit) WithSpans(spans []highlight.Span) Hit {
	h.spans = spans
	return h
}

// Page is one page of hits with the total match count.
type Page struct {
	Hits  []Hit
	Total int
}
