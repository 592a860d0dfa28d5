// Package bleve provides the embedded text-analysis driver: the bleve
// English analyzer (lowercasing, stop words, snowball stemming) run
// in-process. It serves local and dev environments where no managed search
// service is reachable, behind the same contract as the remote driver.
package bleve

import (
	"context"
	"fmt"
	"time"

	blevean "github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/registry"

	domanalysis "github.com/reelvault/reelsearch/internal/domain/analysis"
	"github.com/reelvault/reelsearch/internal/metrics"
)

const driverName = "bleve"

// Analyzer wraps a bleve language analyzer.
type Analyzer struct {
	analyzer blevean.Analyzer
}

// New creates the embedded analyzer using the English analyzer from the
// bleve registry.
func New() (*Analyzer, error) {
	cache := registry.NewCache()
	a, err := cache.AnalyzerNamed(en.AnalyzerName)
	if err != nil {
		return nil, fmt.Errorf("load %q analyzer: %w", en.AnalyzerName, err)
	}
	return &Analyzer{analyzer: a}, nil
}

// Analyze tokenizes text in-process. Positions are bleve word ordinals and
// offsets are byte offsets into text; both spaces are consistent between the
// transcript and the query-term calls, which is all the matcher needs.
func (a *Analyzer) Analyze(_ context.Context, text string) ([]domanalysis.Token, error) {
	if text == "" {
		return nil, nil
	}

	start := time.Now()
	stream := a.analyzer.Analyze([]byte(text))

	metrics.AnalysisRequestsTotal.WithLabelValues(driverName, "success").Inc()
	metrics.AnalysisRequestDuration.WithLabelValues(driverName).Observe(time.Since(start).Seconds())
	metrics.AnalysisTokensTotal.WithLabelValues(driverName).Add(float64(len(stream)))

	tokens := make([]domanalysis.Token, 0, len(stream))
	for _, t := range stream {
		tokens = append(tokens, domanalysis.Token{
			Text:     string(t.Term),
			Position: t.Position,
			Start:    t.Start,
			End:      t.End,
		})
	}
	return tokens, nil
}

// HealthCheck always passes: the analyzer lives in-process.
func (a *Analyzer) HealthCheck(_ context.Context) error {
	return nil
}
