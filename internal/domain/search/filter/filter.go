// Package filter models the pass-through metadata filters a search request
// forwards to the index: exact tag matches and numeric ranges, optionally
// negated. The engine never interprets them; they go straight into the
// FT.SEARCH pre-condition.
package filter

import "fmt"

// MaxConditions is the maximum number of conditions per group.
const MaxConditions = 32

// Expression is a conjunction of conditions plus a set of excluded ones.
type Expression struct {
	all     []Condition
	exclude []Condition
}

// NewExpression validates and creates an Expression.
func NewExpression(all, exclude []Condition) (Expression, error) {
	if len(all) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	if len(exclude) > MaxConditions {
		return Expression{}, fmt.Errorf("too many excluded conditions (max %d)", MaxConditions)
	}
	return Expression{all: all, exclude: exclude}, nil
}

// All returns the conditions every hit must satisfy.
func (e Expression) All() []Condition { return e.all }

// Exclude returns the conditions no hit may satisfy.
func (e Expression) Exclude() []Condition { return e.exclude }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.all) == 0 && len(e.exclude) == 0 }

// Condition is a single filter clause: a tag match or a numeric range.
type Condition struct {
	field     string
	tag       string
	rangeExpr *Range
}

// NewTag creates an exact tag match condition.
func NewTag(field, value string) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("filter field is required")
	}
	if value == "" {
		return Condition{}, fmt.Errorf("tag value is required for field %q", field)
	}
	return Condition{field: field, tag: value}, nil
}

// NewRange creates a numeric range condition.
func NewRange(field string, r Range) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("filter field is required")
	}
	return Condition{field: field, rangeExpr: &r}, nil
}

// Field returns the indexed field name.
func (c Condition) Field() string { return c.field }

// Tag returns the exact tag value.
func (c Condition) Tag() string { return c.tag }

// Range returns the numeric range.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsTag reports whether this is a tag match condition.
func (c Condition) IsTag() bool { return c.tag != "" }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// Range is a numeric range with optional inclusive/exclusive bounds.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeBounds validates and creates a Range. At least one bound required;
// gt/gte and lt/lte are mutually exclusive.
func NewRangeBounds(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range bound is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }
