// Package search maps raw FT results onto domain hits and facets.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/reelvault/reelsearch/internal/db"
	"github.com/reelvault/reelsearch/internal/domain"
	"github.com/reelvault/reelsearch/internal/domain/search/facet"
	"github.com/reelvault/reelsearch/internal/domain/search/filter"
	"github.com/reelvault/reelsearch/internal/domain/search/result"
	storyrepo "github.com/reelvault/reelsearch/internal/repository/story"
)

// IndexName is the FT index over story hashes.
const IndexName = domain.KeyPrefix + "stories:idx"

// Definition returns the FT.CREATE definition for the story index.
func Definition() *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:        IndexName,
		StorageType: db.StorageHash,
		Prefixes:    []string{domain.KeyPrefix + "story:"},
		Fields: []db.IndexField{
			{Name: storyrepo.FieldTranscript, Type: db.IndexFieldText},
			{Name: storyrepo.FieldTitle, Type: db.IndexFieldText, Weight: 2},
			{Name: storyrepo.FieldSpeaker, Type: db.IndexFieldTag},
			{Name: storyrepo.FieldCollection, Type: db.IndexFieldTag},
			{Name: storyrepo.FieldYear, Type: db.IndexFieldNumeric},
			{Name: storyrepo.FieldDuration, Type: db.IndexFieldNumeric},
		},
	}
}

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, q *db.TextQuery) (int, error)
	AggregateCounts(ctx context.Context, q *db.FacetQuery) ([]db.FacetCount, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search forwards the query and filters to the index and maps hits.
func (r *Repo) Search(
	ctx context.Context, query string, filters filter.Expression, offset, limit int,
) (result.Page, error) {
	res, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: IndexName,
		Query:     query,
		Filters:   filters,
		Offset:    offset,
		Limit:     limit,
		ReturnFields: []string{
			storyrepo.FieldTitle, storyrepo.FieldSpeaker, storyrepo.FieldCollection,
			storyrepo.FieldYear, storyrepo.FieldTranscript,
		},
	})
	if err != nil {
		return result.Page{}, fmt.Errorf("search text: %w", err)
	}

	hits := make([]result.Hit, 0, len(res.Entries))
	for _, e := range res.Entries {
		year, _ := strconv.Atoi(e.Fields[storyrepo.FieldYear])
		hits = append(hits, result.New(
			storyID(e.Key),
			e.Score,
			e.Fields[storyrepo.FieldTitle],
			e.Fields[storyrepo.FieldSpeaker],
			e.Fields[storyrepo.FieldCollection],
			year,
			e.Fields[storyrepo.FieldTranscript],
		))
	}

	return result.Page{Hits: hits, Total: res.Total}, nil
}

// Facet enumerates bucket counts for one field under the same query scope.
func (r *Repo) Facet(
	ctx context.Context, query string, filters filter.Expression, field string, limit int,
) (facet.Facet, error) {
	counts, err := r.store.AggregateCounts(ctx, &db.FacetQuery{
		IndexName: IndexName,
		Query:     query,
		Filters:   filters,
		Field:     field,
		Limit:     limit,
	})
	if err != nil {
		return facet.Facet{}, fmt.Errorf("aggregate %s: %w", field, err)
	}

	total, err := r.store.SearchCount(ctx, &db.TextQuery{
		IndexName: IndexName,
		Query:     query,
		Filters:   filters,
	})
	if err != nil {
		return facet.Facet{}, fmt.Errorf("count %s scope: %w", field, err)
	}

	values := make([]facet.Value, 0, len(counts))
	for _, c := range counts {
		values = append(values, facet.Value{Value: c.Value, Count: c.Count})
	}
	return facet.Facet{Field: field, Values: values, Total: total}, nil
}

func storyID(key string) string {
	return strings.TrimPrefix(key, domain.KeyPrefix+"story:")
}
