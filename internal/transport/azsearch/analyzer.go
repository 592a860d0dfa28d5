// Package azsearch calls the archive's managed search service analyze
// endpoint to tokenize text with the same language analyzer the index uses.
package azsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/reelvault/reelsearch/internal/domain/analysis"
	"github.com/reelvault/reelsearch/internal/metrics"
)

const driverName = "azure"

// Config holds the analyze endpoint settings.
type Config struct {
	Endpoint   string // e.g. https://myservice.search.windows.net
	Index      string
	APIKey     string
	APIVersion string
	Analyzer   string // e.g. en.microsoft
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Analyzer is a remote text-analysis client with transport-level metrics.
type Analyzer struct {
	client     *http.Client
	endpoint   string
	index      string
	apiKey     string
	apiVersion string
	analyzer   string
	logger     *zap.Logger
}

// analyzeRequest is the analyze endpoint request body.
type analyzeRequest struct {
	Text     string `json:"text"`
	Analyzer string `json:"analyzer"`
}

// analyzeResponse is the analyze endpoint response body.
type analyzeResponse struct {
	Tokens []struct {
		Token       string `json:"token"`
		StartOffset int    `json:"startOffset"`
		EndOffset   int    `json:"endOffset"`
		Position    int    `json:"position"`
	} `json:"tokens"`
}

// New creates a remote analyzer client.
func New(cfg *Config) *Analyzer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		client:     &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		index:      cfg.Index,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		analyzer:   cfg.Analyzer,
		logger:     logger,
	}
}

// Analyze tokenizes text through the remote analyze endpoint. A blank input
// never reaches the wire.
func (a *Analyzer) Analyze(ctx context.Context, text string) ([]analysis.Token, error) {
	if text == "" {
		return nil, nil
	}

	body, err := json.Marshal(analyzeRequest{Text: text, Analyzer: a.analyzer})
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.analyzeURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", a.apiKey)

	start := time.Now()
	resp, err := a.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(driverName, "error").Inc()
		metrics.AnalysisErrorsTotal.WithLabelValues(driverName, "transport").Inc()
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.AnalysisRequestsTotal.WithLabelValues(driverName, "error").Inc()
		metrics.AnalysisErrorsTotal.WithLabelValues(driverName, "api_error").Inc()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("analyze API status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(driverName, "error").Inc()
		metrics.AnalysisErrorsTotal.WithLabelValues(driverName, "decode").Inc()
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}

	metrics.AnalysisRequestsTotal.WithLabelValues(driverName, "success").Inc()
	metrics.AnalysisRequestDuration.WithLabelValues(driverName).Observe(duration.Seconds())
	metrics.AnalysisTokensTotal.WithLabelValues(driverName).Add(float64(len(parsed.Tokens)))

	tokens := make([]analysis.Token, 0, len(parsed.Tokens))
	for _, t := range parsed.Tokens {
		tokens = append(tokens, analysis.Token{
			Text:     t.Token,
			Position: t.Position,
			Start:    t.StartOffset,
			End:      t.EndOffset,
		})
	}
	return tokens, nil
}

// HealthCheck verifies the index is reachable.
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	u := fmt.Sprintf("%s/indexes/%s?api-version=%s",
		a.endpoint, url.PathEscape(a.index), url.QueryEscape(a.apiVersion))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}
	req.Header.Set("api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	return nil
}

func (a *Analyzer) analyzeURL() string {
	return fmt.Sprintf("%s/indexes/%s/analyze?api-version=%s",
		a.endpoint, url.PathEscape(a.index), url.QueryEscape(a.apiVersion))
}
