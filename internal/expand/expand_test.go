package expand

import (
	"testing"

	"github.com/mikepound/opencubes/internal/grid"
)

func singleCube(t *testing.T) grid.Grid {
	t.Helper()
	g, err := grid.New(1, 1, 1)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	g.Set(0, 0, 0, true)
	return g
}

func TestExpandSingleCubeYieldsSixFaces(t *testing.T) {
	g := singleCube(t)
	n := 0
	for r := range Expand(g) {
		n++
		if r.Count() != 2 {
			t.Fatalf("expanded grid has %d cells, want 2", r.Count())
		}
		if !grid.Connected(r) {
			t.Fatalf("expanded grid is not face-connected: %+v", r)
		}
		if !grid.BoundaryFacesOccupied(r) {
			t.Fatalf("expanded grid is not cropped: %+v", r)
		}
	}
	if n != 6 {
		t.Fatalf("got %d expansions of a single cube, want 6 (one per face)", n)
	}
}

func TestExpandAlwaysConnectedAndCropped(t *testing.T) {
	// A 2x2x1 square tetromino-in-progress (an L of 3 cubes).
	base, _ := grid.New(2, 2, 1)
	base.Set(0, 0, 0, true)
	base.Set(1, 0, 0, true)
	base.Set(0, 1, 0, true)

	count := 0
	for r := range Expand(base) {
		count++
		if r.Count() != 4 {
			t.Fatalf("expanded grid has %d cells, want 4", r.Count())
		}
		if !grid.Connected(r) {
			t.Fatalf("expanded grid not connected: %+v", r)
		}
		if !grid.BoundaryFacesOccupied(r) {
			t.Fatalf("expanded grid not cropped: %+v", r)
		}
	}
	if count == 0 {
		t.Fatalf("expected at least one expansion")
	}
}

func TestExpandIncludesEveryAdjacentFace(t *testing.T) {
	// For the straight tromino, expanding must include both end-caps and
	// the four side faces at each of the 3 segments, deduplicated only by
	// being the same cell.
	bar, _ := grid.New(3, 1, 1)
	bar.Set(0, 0, 0, true)
	bar.Set(1, 0, 0, true)
	bar.Set(2, 0, 0, true)

	n := 0
	for range Expand(bar) {
		n++
	}
	// 2 end caps + 4 sides * 3 segments = 14 candidate cells.
	if n != 14 {
		t.Fatalf("got %d expansions of a straight tromino, want 14", n)
	}
}
