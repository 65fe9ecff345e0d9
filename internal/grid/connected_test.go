package grid

import "testing"

func TestConnected(t *testing.T) {
	g, _ := New(3, 1, 1)
	g.Set(0, 0, 0, true)
	g.Set(1, 0, 0, true)
	g.Set(2, 0, 0, true)
	if !Connected(g) {
		t.Fatalf("expected a straight tromino to be connected")
	}

	disjoint, _ := New(3, 1, 1)
	disjoint.Set(0, 0, 0, true)
	disjoint.Set(2, 0, 0, true)
	if Connected(disjoint) {
		t.Fatalf("expected two cells separated by a gap to be disconnected")
	}
}

func TestBoundaryFacesOccupied(t *testing.T) {
	g, _ := New(2, 2, 1)
	g.Set(0, 0, 0, true)
	g.Set(1, 1, 0, true)
	if !BoundaryFacesOccupied(g) {
		t.Fatalf("expected every face to have an occupied cell")
	}

	padded, _ := New(3, 1, 1)
	padded.Set(1, 0, 0, true)
	if BoundaryFacesOccupied(padded) {
		t.Fatalf("expected a grid with empty boundary layers to fail the cropped check")
	}
}
