package search

import (
	"context"

	"github.com/reelvault/reelsearch/internal/domain/highlight"
	"github.com/reelvault/reelsearch/internal/domain/search/facet"
	"github.com/reelvault/reelsearch/internal/domain/search/filter"
	"github.com/reelvault/reelsearch/internal/domain/search/result"
)

// Repository defines the index contract for search operations.
type Repository interface {
	Search(ctx context.Context, query string, filters filter.Expression, offset, limit int) (result.Page, error)
	Facet(ctx context.Context, query string, filters filter.Expression, field string, limit int) (facet.Facet, error)
}

// Highlighter computes transcript match spans for a query.
type Highlighter interface {
	FindMatches(ctx context.Context, queryTerms, transcript string) ([]highlight.Span, error)
}
