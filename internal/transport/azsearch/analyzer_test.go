package azsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAnalyzer(t *testing.T, handler http.HandlerFunc) (*Analyzer, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a := New(&Config{
		Endpoint:   srv.URL,
		Index:      "stories",
		APIKey:     "secret",
		APIVersion: "2023-11-01",
		Analyzer:   "en.microsoft",
	})
	return a, srv
}

func TestAnalyze(t *testing.T) {
	a, _ := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Path; got != "/indexes/stories/analyze" {
			t.Errorf("path = %q", got)
		}
		if got := r.URL.Query().Get("api-version"); got != "2023-11-01" {
			t.Errorf("api-version = %q", got)
		}
		if got := r.Header.Get("api-key"); got != "secret" {
			t.Errorf("api-key = %q", got)
		}

		var req struct {
			Text     string `json:"text"`
			Analyzer string `json:"analyzer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Analyzer != "en.microsoft" {
			t.Errorf("analyzer = %q", req.Analyzer)
		}
		if req.Text != "Buffalo Bills" {
			t.Errorf("text = %q", req.Text)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"tokens": []map[string]any{
				{"token": "buffalo", "startOffset": 0, "endOffset": 7, "position": 0},
				{"token": "bill", "startOffset": 8, "endOffset": 13, "position": 1},
			},
		})
	})

	tokens, err := a.Analyze(context.Background(), "Buffalo Bills")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(tokens) != 2 {
		t.Fatalf("tokens = %d, want 2", len(tokens))
	}
	if tokens[0].Text != "buffalo" || tokens[0].Start != 0 || tokens[0].End != 7 {
		t.Errorf("token[0] = %+v", tokens[0])
	}
	if tokens[1].Text != "bill" || tokens[1].Position != 1 {
		t.Errorf("token[1] = %+v", tokens[1])
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	called := false
	a, _ := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	tokens, err := a.Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if tokens != nil {
		t.Errorf("tokens = %v, want nil", tokens)
	}
	if called {
		t.Error("blank input reached the wire")
	}
}

func TestAnalyzeAPIError(t *testing.T) {
	a, _ := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := a.Analyze(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAnalyzeBadJSON(t *testing.T) {
	a, _ := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	if _, err := a.Analyze(context.Background(), "text"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestHealthCheck(t *testing.T) {
	a, _ := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/stories" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := a.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestHealthCheckFailure(t *testing.T) {
	a, _ := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	if err := a.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
