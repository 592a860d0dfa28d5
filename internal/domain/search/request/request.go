// Package request models an inbound archive search request.
package request

import (
	"fmt"
	"strings"

	"github.com/reelvault/reelsearch/internal/domain/search/filter"
)

const (
	// DefaultLimit is the page size when none is requested.
	DefaultLimit = 20
	// MaxLimit caps the page size.
	MaxLimit = 100
	// MaxQueryLength caps the raw query string.
	MaxQueryLength = 1024
)

// Request is a validated search request: the raw query is forwarded to the
// index verbatim (the index engine owns its interpretation), filters and
// facet fields pass straight through, and the same raw query later drives
// transcript highlighting.
type Request struct {
	query      string
	filters    filter.Expression
	facets     []string
	offset     int
	limit      int
	highlights bool
}

// New validates and creates a Request.
func New(query string, filters filter.Expression, facets []string, offset, limit int, highlights bool) (Request, error) {
	if strings.TrimSpace(query) == "" && filters.IsEmpty() {
		return Request{}, fmt.Errorf("query or filters required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d)", MaxQueryLength)
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("offset must be non-negative")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		return Request{}, fmt.Errorf("limit too large (max %d)", MaxLimit)
	}
	return Request{
		query: query, filters: filters, facets: facets,
		offset: offset, limit: limit, highlights: highlights,
	}, nil
}

// Query returns the raw query string.
func (r *Request) Query() string { return r.query }

// Filters returns the pass-through filter expression.
func (r *Request) Filters() filter.Expression { return r.filters }

// Facets returns the fields to enumerate facet counts for.
func (r *Request) Facets() []string { return r.facets }

// Offset returns the page offset.
func (r *Request) Offset() int { return r.offset }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Highlights reports whether transcript highlight spans were requested.
func (r *Request) Highlights() bool { return r.highlights }
