// Package chi exposes the archive search API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reelvault/reelsearch/internal/domain"
	"github.com/reelvault/reelsearch/internal/domain/highlight"
	"github.com/reelvault/reelsearch/internal/domain/search/facet"
	"github.com/reelvault/reelsearch/internal/domain/search/filter"
	"github.com/reelvault/reelsearch/internal/domain/search/request"
	"github.com/reelvault/reelsearch/internal/domain/search/result"
	healthuc "github.com/reelvault/reelsearch/internal/usecase/health"
	searchuc "github.com/reelvault/reelsearch/internal/usecase/search"
	storyuc "github.com/reelvault/reelsearch/internal/usecase/story"
	"github.com/reelvault/reelsearch/internal/version"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeStoryNotFound    = "story_not_found"
	codeInvalidFacet     = "invalid_facet"
	codeAnalysisFailed   = "analysis_failed"
	codeRateLimited      = "rate_limited"
	codeNotImplemented   = "not_implemented"
	codeInternal         = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers.
type Server struct {
	search        *searchuc.Service
	stories       *storyuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	stories *storyuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		stories: stories,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrStoryNotFound, http.StatusNotFound, codeStoryNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidStory, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidFacet, http.StatusBadRequest, codeInvalidFacet),
		sentinelHandler(domain.ErrAnalysisFailed, http.StatusBadGateway, codeAnalysisFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, codeNotImplemented),
	}
	return s
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.handleSearch)
	r.Get("/facets/{field}", s.handleGetFacet)
	r.Get("/stories/{id}", s.handleGetStory)
	r.Put("/stories/{id}", s.handlePutStory)
	r.Delete("/stories/{id}", s.handleDeleteStory)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// handleSearch handles POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	filters, err := filtersFromDTO(req.Filters)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	domReq, err := request.New(req.Query, filters, req.Facets, req.Offset, req.Limit, req.Highlights)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), &domReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseToDTO(resp))
}

// handleGetFacet handles GET /facets/{field}. An optional ?q= scopes the
// buckets to matching stories.
func (s *Server) handleGetFacet(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	query := r.URL.Query().Get("q")

	f, err := s.search.Facet(r.Context(), field, query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, facetToDTO(f))
}

// handleGetStory handles GET /stories/{id}. An optional ?q= computes
// highlight spans for that query over the transcript.
func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	query := r.URL.Query().Get("q")

	view, err := s.stories.Get(r.Context(), id, query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, storyViewToDTO(view))
}

// handlePutStory handles PUT /stories/{id}.
func (s *Server) handlePutStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := s.stories.Upsert(
		r.Context(), id, req.Title, req.Speaker, req.Collection,
		req.Year, req.Duration, req.Transcript,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]string{"id": id})
}

// handleDeleteStory handles DELETE /stories/{id}.
func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.stories.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, status, healthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// handleDomainError walks the sentinel table; unmatched errors become 500s.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// --- DTOs ---

type searchRequest struct {
	Query      string     `json:"query"`
	Filters    filtersDTO `json:"filters"`
	Facets     []string   `json:"facets"`
	Offset     int        `json:"offset"`
	Limit      int        `json:"limit"`
	Highlights bool       `json:"highlights"`
}

type filtersDTO struct {
	All     []conditionDTO `json:"all"`
	Exclude []conditionDTO `json:"exclude"`
}

type conditionDTO struct {
	Field string    `json:"field"`
	Tag   string    `json:"tag,omitempty"`
	Range *rangeDTO `json:"range,omitempty"`
}

type rangeDTO struct {
	GT  *float64 `json:"gt,omitempty"`
	GTE *float64 `json:"gte,omitempty"`
	LT  *float64 `json:"lt,omitempty"`
	LTE *float64 `json:"lte,omitempty"`
}

type storyRequest struct {
	Title      string  `json:"title"`
	Speaker    string  `json:"speaker"`
	Collection string  `json:"collection"`
	Year       int     `json:"year"`
	Duration   float64 `json:"duration"`
	Transcript string  `json:"transcript"`
}

type spanDTO struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type hitDTO struct {
	ID         string    `json:"id"`
	Score      float64   `json:"score"`
	Title      string    `json:"title"`
	Speaker    string    `json:"speaker,omitempty"`
	Collection string    `json:"collection,omitempty"`
	Year       int       `json:"year,omitempty"`
	Spans      []spanDTO `json:"spans,omitempty"`
}

type facetValueDTO struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type facetDTO struct {
	Field  string          `json:"field"`
	Values []facetValueDTO `json:"values"`
	Total  int             `json:"total"`
}

type searchResponseDTO struct {
	Total  int        `json:"total"`
	Hits   []hitDTO   `json:"hits"`
	Facets []facetDTO `json:"facets,omitempty"`
}

type storyViewDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Speaker    string    `json:"speaker,omitempty"`
	Collection string    `json:"collection,omitempty"`
	Year       int       `json:"year,omitempty"`
	Duration   float64   `json:"duration,omitempty"`
	Transcript string    `json:"transcript"`
	Spans      []spanDTO `json:"spans"`
	Degraded   bool      `json:"highlighting_degraded,omitempty"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func filtersFromDTO(dto filtersDTO) (filter.Expression, error) {
	all, err := conditionsFromDTO(dto.All)
	if err != nil {
		return filter.Expression{}, err
	}
	exclude, err := conditionsFromDTO(dto.Exclude)
	if err != nil {
		return filter.Expression{}, err
	}
	return filter.NewExpression(all, exclude)
}

func conditionsFromDTO(dtos []conditionDTO) ([]filter.Condition, error) {
	conditions := make([]filter.Condition, 0, len(dtos))
	for _, d := range dtos {
		switch {
		case d.Range != nil:
			r, err := filter.NewRangeBounds(d.Range.GT, d.Range.GTE, d.Range.LT, d.Range.LTE)
			if err != nil {
				return nil, err
			}
			c, err := filter.NewRange(d.Field, r)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, c)
		default:
			c, err := filter.NewTag(d.Field, d.Tag)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, c)
		}
	}
	return conditions, nil
}

func searchResponseToDTO(resp searchuc.Response) searchResponseDTO {
	dto := searchResponseDTO{
		Total: resp.Page.Total,
		Hits:  make([]hitDTO, 0, len(resp.Page.Hits)),
	}
	for i := range resp.Page.Hits {
		dto.Hits = append(dto.Hits, hitToDTO(&resp.Page.Hits[i]))
	}
	for _, f := range resp.Facets {
		dto.Facets = append(dto.Facets, facetToDTO(f))
	}
	return dto
}

func facetToDTO(f facet.Facet) facetDTO {
	fd := facetDTO{Field: f.Field, Total: f.Total, Values: make([]facetValueDTO, 0, len(f.Values))}
	for _, v := range f.Values {
		fd.Values = append(fd.Values, facetValueDTO{Value: v.Value, Count: v.Count})
	}
	return fd
}

func hitToDTO(h *result.Hit) hitDTO {
	return hitDTO{
		ID:         h.ID(),
		Score:      h.Score(),
		Title:      h.Title(),
		Speaker:    h.Speaker(),
		Collection: h.Collection(),
		Year:       h.Year(),
		Spans:      spansToDTO(h.Spans()),
	}
}

func storyViewToDTO(v storyuc.View) storyViewDTO {
	st := v.Story
	spans := spansToDTO(v.Spans)
	if spans == nil {
		spans = []spanDTO{}
	}
	return storyViewDTO{
		ID:         st.ID(),
		Title:      st.Title(),
		Speaker:    st.Speaker(),
		Collection: st.Collection(),
		Year:       st.Year(),
		Duration:   st.Duration(),
		Transcript: st.Transcript(),
		Spans:      spans,
		Degraded:   v.Degraded,
	}
}

func spansToDTO(spans []highlight.Span) []spanDTO {
	if len(spans) == 0 {
		return nil
	}
	out := make([]spanDTO, 0, len(spans))
	for _, s := range spans {
		out = append(out, spanDTO{Start: s.Start, End: s.End})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
