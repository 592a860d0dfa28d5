// Package highlight orchestrates the query-to-transcript matching pipeline:
// parse the query, scan phrases against the raw transcript, resolve exact and
// prefix terms through the analyzer, and merge everything into ordered spans.
package highlight

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/reelvault/reelsearch/internal/domain"
	"github.com/reelvault/reelsearch/internal/domain/analysis"
	domhl "github.com/reelvault/reelsearch/internal/domain/highlight"
)

// Service computes highlight spans for transcript text. It is stateless;
// every call builds its own dictionary and merge set.
type Service struct {
	analyzer Analyzer
}

// New creates a highlight service around the given analyzer.
func New(analyzer Analyzer) *Service {
	return &Service{analyzer: analyzer}
}

// FindMatches returns the transcript spans matching queryTerms, ascending by
// position with no duplicate positions. Blank query or transcript yields an
// empty slice without touching the analyzer. The only possible error is an
// analyzer failure, wrapped in domain.ErrAnalysisFailed.
func (s *Service) FindMatches(ctx context.Context, queryTerms, transcript string) ([]domhl.Span, error) {
	if strings.TrimSpace(queryTerms) == "" || strings.TrimSpace(transcript) == "" {
		return []domhl.Span{}, nil
	}

	query := domhl.ParseQuery(queryTerms)
	merger := domhl.NewMerger()

	// Phrases go in first and are matched against the raw text, not tokens.
	for _, m := range domhl.MatchPhrases(transcript, query.Phrases) {
		merger.Add(m.Position, domhl.Span{Start: m.Start, End: m.End})
	}

	haveExact := strings.TrimSpace(query.ExactTerms) != ""
	if !haveExact && len(query.PrefixTerms) == 0 {
		return merger.Spans(), nil
	}

	transcriptTokens, termTokens, err := s.analyze(ctx, transcript, query.ExactTerms, haveExact)
	if err != nil {
		return nil, err
	}
	dict := analysis.NewDictionary(transcriptTokens)

	// Exact terms: the analyzed query token must equal a dictionary key, so
	// stemming applies on both sides.
	for _, t := range termTokens {
		for _, occ := range dict.Lookup(t.Text) {
			merger.Add(occ.Position, domhl.Span{Start: occ.Start, End: occ.End})
		}
	}

	// Prefix terms: plain case-sensitive prefix test over dictionary keys.
	for _, prefix := range query.PrefixTerms {
		for _, key := range dict.Keys() {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			for _, occ := range dict.Lookup(key) {
				merger.Add(occ.Position, domhl.Span{Start: occ.Start, End: occ.End})
			}
		}
	}

	return merger.Spans(), nil
}

// analyze runs the transcript and exact-term analyzer calls concurrently.
// The calls are independent; each result feeds its own structure.
func (s *Service) analyze(
	ctx context.Context, transcript, exactTerms string, haveExact bool,
) (transcriptTokens, termTokens []analysis.Token, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tokens, aerr := s.analyzer.Analyze(gctx, transcript)
		if aerr != nil {
			return fmt.Errorf("analyze transcript: %w: %w", domain.ErrAnalysisFailed, aerr)
		}
		transcriptTokens = tokens
		return nil
	})

	if haveExact {
		g.Go(func() error {
			tokens, aerr := s.analyzer.Analyze(gctx, exactTerms)
			if aerr != nil {
				return fmt.Errorf("analyze terms: %w: %w", domain.ErrAnalysisFailed, aerr)
			}
			termTokens = tokens
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return transcriptTokens, termTokens, nil
}
