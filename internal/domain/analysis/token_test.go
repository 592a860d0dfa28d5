package analysis

import (
	"reflect"
	"testing"
)

func TestDictionaryGroupsByText(t *testing.T) {
	tokens := []Token{
		{Text: "buffalo", Position: 0, Start: 0, End: 7},
		{Text: "bill", Position: 1, Start: 8, End: 13},
		{Text: "buffalo", Position: 5, Start: 40, End: 47},
	}

	d := NewDictionary(tokens)

	if d.Len() != 2 {
		t.Errorf("Len = %d, want 2", d.Len())
	}

	got := d.Lookup("buffalo")
	if len(got) != 2 {
		t.Fatalf("Lookup(buffalo) = %d occurrences, want 2", len(got))
	}
	// Occurrence order is preserved.
	if got[0].Position != 0 || got[1].Position != 5 {
		t.Errorf("positions = %d,%d, want 0,5", got[0].Position, got[1].Position)
	}
}

func TestDictionaryLookupMiss(t *testing.T) {
	d := NewDictionary([]Token{{Text: "cat"}})

	if got := d.Lookup("dog"); got != nil {
		t.Errorf("Lookup(dog) = %v, want nil", got)
	}
}

func TestDictionaryKeysSorted(t *testing.T) {
	d := NewDictionary([]Token{
		{Text: "zebra"}, {Text: "apple"}, {Text: "mango"}, {Text: "apple"},
	})

	got := d.Keys()
	want := []string{"apple", "mango", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}

func TestDictionaryEmpty(t *testing.T) {
	d := NewDictionary(nil)

	if d.Len() != 0 {
		t.Errorf("Len = %d, want 0", d.Len())
	}
	if got := d.Keys(); len(got) != 0 {
		t.Errorf("Keys = %v, want empty", got)
	}
}
