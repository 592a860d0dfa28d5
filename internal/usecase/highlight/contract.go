package highlight

import (
	"context"

	"github.com/reelvault/reelsearch/internal/domain/analysis"
)

// Analyzer is the external text-analysis capability. It performs
// language-aware tokenization (stemming, possibly synonym expansion — several
// tokens may share a position), so its output is ground truth for term
// matching. A failure must stay distinguishable from an empty token stream.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]analysis.Token, error)
}
