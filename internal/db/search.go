package db

import "github.com/reelvault/reelsearch/internal/domain/search/filter"

// TextQuery is an FT.SEARCH full-text query with pass-through filters.
type TextQuery struct {
	IndexName    string
	Query        string
	Filters      filter.Expression
	Offset       int
	Limit        int
	ReturnFields []string
}

// FacetQuery is an FT.AGGREGATE GROUPBY count over one field.
type FacetQuery struct {
	IndexName string
	Query     string
	Filters   filter.Expression
	Field     string
	Limit     int
}

// SearchEntry is one raw search hit.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is a raw FT.SEARCH result page.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// FacetCount is one GROUPBY bucket.
type FacetCount struct {
	Value string
	Count int
}
