package story

import (
	"context"

	"github.com/reelvault/reelsearch/internal/domain/highlight"
	domstory "github.com/reelvault/reelsearch/internal/domain/story"
)

// Repository defines the storage contract for stories.
type Repository interface {
	Upsert(ctx context.Context, s *domstory.Story) (bool, error)
	Get(ctx context.Context, id string) (domstory.Story, error)
	Delete(ctx context.Context, id string) error
}

// Highlighter computes transcript match spans for a query.
type Highlighter interface {
	FindMatches(ctx context.Context, queryTerms, transcript string) ([]highlight.Span, error)
}
