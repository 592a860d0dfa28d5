// Package facet models facet enumeration results.
package facet

// Value is one facet bucket: a distinct field value and its match count.
type Value struct {
	Value string
	Count int
}

// Facet is the enumeration of one field's buckets plus the total number of
// stories in the enumerated scope.
type Facet struct {
	Field  string
	Values []Value
	Total  int
}
