// Package story serves single archive stories, optionally decorated with
// highlight spans for the query that led the caller here.
package story

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/reelvault/reelsearch/internal/domain/highlight"
	domstory "github.com/reelvault/reelsearch/internal/domain/story"
	"github.com/reelvault/reelsearch/internal/logger"
)

// View is a story plus the spans computed for the requesting query.
// Degraded is set when highlighting was requested but the analysis backend
// failed; the story itself is still served.
type View struct {
	Story    domstory.Story
	Spans    []highlight.Span
	Degraded bool
}

// Service handles story retrieval and ingestion.
type Service struct {
	repo        Repository
	highlighter Highlighter
}

// New creates a story service.
func New(repo Repository, highlighter Highlighter) *Service {
	return &Service{repo: repo, highlighter: highlighter}
}

// Get fetches a story. A non-blank query requests highlight spans over the
// transcript; an analysis failure degrades to a spanless view.
func (s *Service) Get(ctx context.Context, id, query string) (View, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("get story %s: %w", id, err)
	}

	view := View{Story: st}
	if strings.TrimSpace(query) == "" {
		return view, nil
	}

	spans, err := s.highlighter.FindMatches(ctx, query, st.Transcript())
	if err != nil {
		logger.FromContext(ctx).Warn("highlighting degraded",
			zap.String("story_id", id),
			zap.Error(err),
		)
		view.Degraded = true
		return view, nil
	}

	view.Spans = spans
	return view, nil
}

// Upsert validates and stores a story. Returns true if created.
func (s *Service) Upsert(
	ctx context.Context, id, title, speaker, collection string,
	year int, duration float64, transcript string,
) (bool, error) {
	st, err := domstory.New(id, title, speaker, collection, year, duration, transcript)
	if err != nil {
		return false, fmt.Errorf("validate story: %w", err)
	}

	created, err := s.repo.Upsert(ctx, &st)
	if err != nil {
		return false, fmt.Errorf("upsert story %s: %w", id, err)
	}
	return created, nil
}

// Delete removes a story.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete story %s: %w", id, err)
	}
	return nil
}
