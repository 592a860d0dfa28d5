package filter

import "testing"

func f64(v float64) *float64 { return &v }

func TestNewTag(t *testing.T) {
	c, err := NewTag("collection", "wwii")
	if err != nil {
		t.Fatalf("NewTag: %v", err)
	}
	if !c.IsTag() || c.IsRange() {
		t.Error("condition kind wrong")
	}
	if c.Field() != "collection" || c.Tag() != "wwii" {
		t.Errorf("condition = %+v", c)
	}
}

func TestNewTagValidation(t *testing.T) {
	if _, err := NewTag("", "v"); err == nil {
		t.Error("expected error for empty field")
	}
	if _, err := NewTag("f", ""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestNewRangeBounds(t *testing.T) {
	r, err := NewRangeBounds(nil, f64(1940), nil, f64(1945))
	if err != nil {
		t.Fatalf("NewRangeBounds: %v", err)
	}
	if *r.GTE() != 1940 || *r.LTE() != 1945 || r.GT() != nil || r.LT() != nil {
		t.Errorf("range = %+v", r)
	}
}

func TestNewRangeBoundsValidation(t *testing.T) {
	if _, err := NewRangeBounds(nil, nil, nil, nil); err == nil {
		t.Error("expected error for no bounds")
	}
	if _, err := NewRangeBounds(f64(1), f64(2), nil, nil); err == nil {
		t.Error("expected error for gt with gte")
	}
	if _, err := NewRangeBounds(nil, nil, f64(1), f64(2)); err == nil {
		t.Error("expected error for lt with lte")
	}
}

func TestExpressionLimits(t *testing.T) {
	many := make([]Condition, MaxConditions+1)
	for i := range many {
		c, err := NewTag("f", "v")
		if err != nil {
			t.Fatalf("NewTag: %v", err)
		}
		many[i] = c
	}

	if _, err := NewExpression(many, nil); err == nil {
		t.Error("expected error for too many conditions")
	}
	if _, err := NewExpression(nil, many); err == nil {
		t.Error("expected error for too many exclusions")
	}
}

func TestExpressionIsEmpty(t *testing.T) {
	var e Expression
	if !e.IsEmpty() {
		t.Error("zero expression not empty")
	}

	c, err := NewTag("f", "v")
	if err != nil {
		t.Fatalf("NewTag: %v", err)
	}
	e, err = NewExpression(nil, []Condition{c})
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}
	if e.IsEmpty() {
		t.Error("exclusion-only expression reported empty")
	}
}
