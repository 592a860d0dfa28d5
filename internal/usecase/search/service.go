// Package search is the request/response glue over the managed full-text
// index: it forwards the query and filters, enumerates facets, and decorates
// hits with transcript highlight spans.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reelvault/reelsearch/internal/domain"
	"github.com/reelvault/reelsearch/internal/domain/search/facet"
	"github.com/reelvault/reelsearch/internal/domain/search/filter"
	"github.com/reelvault/reelsearch/internal/domain/search/request"
	"github.com/reelvault/reelsearch/internal/domain/search/result"
	"github.com/reelvault/reelsearch/internal/logger"
)

// FacetLimit caps the buckets returned per facet field.
const FacetLimit = 50

// facetFields are the fields facet enumeration is allowed on.
var facetFields = map[string]struct{}{
	"speaker":    {},
	"collection": {},
	"year":       {},
}

// Response is one search response: a page of hits plus requested facets.
type Response struct {
	Page   result.Page
	Facets []facet.Facet
}

// Service executes archive searches.
type Service struct {
	repo        Repository
	highlighter Highlighter
}

// New creates a search service.
func New(repo Repository, highlighter Highlighter) *Service {
	return &Service{repo: repo, highlighter: highlighter}
}

// Search forwards the request to the index and, when asked, computes
// highlight spans per hit. A highlighting failure never fails the search:
// the hit stays usable without spans (logged, degraded).
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	for _, field := range req.Facets() {
		if _, ok := facetFields[field]; !ok {
			return Response{}, fmt.Errorf("%w: %s", domain.ErrInvalidFacet, field)
		}
	}

	page, err := s.repo.Search(ctx, req.Query(), req.Filters(), req.Offset(), req.Limit())
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}

	if req.Highlights() {
		page.Hits = s.attachSpans(ctx, req.Query(), page.Hits)
	}

	facets := make([]facet.Facet, 0, len(req.Facets()))
	for _, field := range req.Facets() {
		f, err := s.repo.Facet(ctx, req.Query(), req.Filters(), field, FacetLimit)
		if err != nil {
			return Response{}, fmt.Errorf("facet %s: %w", field, err)
		}
		facets = append(facets, f)
	}

	return Response{Page: page, Facets: facets}, nil
}

// Facet enumerates bucket counts for one field across the whole archive,
// optionally scoped by a query.
func (s *Service) Facet(ctx context.Context, field, query string) (facet.Facet, error) {
	if _, ok := facetFields[field]; !ok {
		return facet.Facet{}, fmt.Errorf("%w: %s", domain.ErrInvalidFacet, field)
	}

	f, err := s.repo.Facet(ctx, query, filter.Expression{}, field, FacetLimit)
	if err != nil {
		return facet.Facet{}, fmt.Errorf("facet %s: %w", field, err)
	}
	return f, nil
}

func (s *Service) attachSpans(ctx context.Context, query string, hits []result.Hit) []result.Hit {
	log := logger.FromContext(ctx)

	out := make([]result.Hit, 0, len(hits))
	for _, hit := range hits {
		spans, err := s.highlighter.FindMatches(ctx, query, hit.Transcript())
		if err != nil {
			log.Warn("highlighting degraded",
				zap.String("story_id", hit.ID()),
				zap.Error(err),
			)
			out = append(out, hit)
			continue
		}
		out = append(out, hit.WithSpans(spans))
	}
	return out
}
