package idset

import "testing"

func TestAddHasLen(t *testing.T) {
	s := New(0)
	if s.Len() != 0 {
		t.Fatalf("new set should be empty")
	}
	id := []byte{1, 2, 3}
	s.Add(id)
	if !s.Has(id) {
		t.Fatalf("expected set to contain the added identifier")
	}
	s.Add([]byte{1, 2, 3}) // distinct slice, equal contents
	if s.Len() != 1 {
		t.Fatalf("adding an equal-content identifier twice should not grow the set, got len %d", s.Len())
	}
}

func TestUnion(t *testing.T) {
	a := New(0)
	a.Add([]byte{1})
	b := New(0)
	b.Add([]byte{2})
	b.Add([]byte{1})

	a.Union(b)
	if a.Len() != 2 {
		t.Fatalf("union should have 2 distinct identifiers, got %d", a.Len())
	}
	if !a.Has([]byte{2}) {
		t.Fatalf("expected union to contain id from other set")
	}
}

func TestSlice(t *testing.T) {
	s := New(0)
	s.Add([]byte{1})
	s.Add([]byte{2})
	got := s.Slice()
	if len(got) != 2 {
		t.Fatalf("Slice returned %d elements, want 2", len(got))
	}
}
