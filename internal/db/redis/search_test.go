package redis

import (
	"strings"
	"testing"

	"github.com/reelvault/reelsearch/internal/domain/search/filter"
)

func mustTag(t *testing.T, field, value string) filter.Condition {
	t.Helper()
	c, err := filter.NewTag(field, value)
	if err != nil {
		t.Fatalf("NewTag: %v", err)
	}
	return c
}

func mustRange(t *testing.T, field string, gt, gte, lt, lte *float64) filter.Condition {
	t.Helper()
	r, err := filter.NewRangeBounds(gt, gte, lt, lte)
	if err != nil {
		t.Fatalf("NewRangeBounds: %v", err)
	}
	c, err := filter.NewRange(field, r)
	if err != nil {
		t.Fatalf("NewRange: %v", err)
	}
	return c
}

func mustExpr(t *testing.T, all, exclude []filter.Condition) filter.Expression {
	t.Helper()
	e, err := filter.NewExpression(all, exclude)
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}
	return e
}

func f64(v float64) *float64 { return &v }

func TestBuildQuery(t *testing.T) {
	tagExpr := mustExpr(t, []filter.Condition{mustTag(t, "collection", "wwii")}, nil)

	tests := []struct {
		name    string
		query   string
		filters filter.Expression
		want    string
	}{
		{
			name:  "query only",
			query: "war bonds",
			want:  "(war bonds)",
		},
		{
			name: "empty everything falls back to star",
			want: "*",
		},
		{
			name:    "filter only",
			filters: tagExpr,
			want:    "@collection:{wwii}",
		},
		{
			name:    "filter precedes query",
			query:   "war bonds",
			filters: tagExpr,
			want:    "@collection:{wwii} (war bonds)",
		},
		{
			name:  "query specials are escaped",
			query: `war-bonds @1943`,
			want:  `(war\-bonds \@1943)`,
		},
		{
			name:  "blank query is no query",
			query: "   ",
			want:  "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuery(tt.query, tt.filters); got != tt.want {
				t.Errorf("buildQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildFilter(t *testing.T) {
	expr := mustExpr(t,
		[]filter.Condition{
			mustTag(t, "collection", "wwii"),
			mustRange(t, "year", nil, f64(1940), nil, f64(1945)),
		},
		[]filter.Condition{
			mustTag(t, "speaker", "Ada Nowak"),
		},
	)

	got := buildFilter(expr)
	want := `@collection:{wwii} @year:[1940 1945] -@speaker:{Ada\ Nowak}`
	if got != want {
		t.Errorf("buildFilter = %q, want %q", got, want)
	}
}

func TestBuildNumericFilter(t *testing.T) {
	tests := []struct {
		name string
		cond filter.Condition
		want string
	}{
		{
			name: "gte lte inclusive",
			cond: mustRange(t, "year", nil, f64(1940), nil, f64(1945)),
			want: "@year:[1940 1945]",
		},
		{
			name: "gt lt exclusive",
			cond: mustRange(t, "duration", f64(60), nil, f64(600), nil),
			want: "@duration:[(60 (600]",
		},
		{
			name: "lower bound only",
			cond: mustRange(t, "year", nil, f64(1950), nil, nil),
			want: "@year:[1950 +inf]",
		},
		{
			name: "upper bound only",
			cond: mustRange(t, "year", nil, nil, f64(1950), nil),
			want: "@year:[-inf (1950]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildCondition(tt.cond); got != tt.want {
				t.Errorf("buildCondition = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeQuery(t *testing.T) {
	got := escapeQuery(`a"b(c)|d-e*f`)
	want := `a\"b\(c\)\|d\-e\*f`
	if got != want {
		t.Errorf("escapeQuery = %q, want %q", got, want)
	}
}

func TestTagEscaping(t *testing.T) {
	got := tagEscaper.Replace("oral history, 1943-45")
	if strings.Contains(got, " ") && !strings.Contains(got, `\ `) {
		t.Errorf("spaces not escaped: %q", got)
	}
	want := `oral\ history\,\ 1943\-45`
	if got != want {
		t.Errorf("tagEscaper = %q, want %q", got, want)
	}
}
