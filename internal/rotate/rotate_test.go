package rotate

import (
	"bytes"
	"sort"
	"testing"

	"github.com/mikepound/opencubes/internal/grid"
)

func boxGrid(t *testing.T, dx, dy, dz int, cells [][3]int) grid.Grid {
	t.Helper()
	g, err := grid.New(dx, dy, dz)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for _, c := range cells {
		g.Set(c[0], c[1], c[2], true)
	}
	return g
}

func allRotationIDs(t *testing.T, g grid.Grid) [][]byte {
	t.Helper()
	var ids [][]byte
	for r := range Rotations(g) {
		id, err := grid.Pack(r)
		if err != nil {
			t.Fatalf("Pack: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestRotationsYieldsExactly24(t *testing.T) {
	g := boxGrid(t, 2, 3, 4, [][3]int{{0, 0, 0}, {1, 2, 3}, {0, 2, 1}})
	ids := allRotationIDs(t, g)
	if len(ids) != 24 {
		t.Fatalf("got %d rotations, want 24", len(ids))
	}
}

func TestRotationsDistinctCountMatchesSignature(t *testing.T) {
	cases := []struct {
		name       string
		dx, dy, dz int
		want       int
	}{
		{"all distinct", 1, 2, 3, 4},
		{"two equal", 2, 2, 3, 8},
		{"all equal", 2, 2, 2, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := boxGrid(t, tc.dx, tc.dy, tc.dz, [][3]int{{0, 0, 0}})
			if got := Signature(g); got != tc.want {
				t.Fatalf("Signature = %d, want %d", got, tc.want)
			}
			n := 0
			for range RotationsDistinct(g) {
				n++
			}
			if n != tc.want {
				t.Fatalf("RotationsDistinct yielded %d, want %d", n, tc.want)
			}
		})
	}
}

func TestRotationsClosure(t *testing.T) {
	// P5: the rotations of a rotation of P are the same set as the
	// rotations of P.
	p := boxGrid(t, 2, 3, 1, [][3]int{{0, 0, 0}, {1, 1, 0}, {0, 2, 0}})

	var r grid.Grid
	for first := range Rotations(p) {
		r = first
		break
	}

	pIDs := allRotationIDs(t, p)
	rIDs := allRotationIDs(t, r)

	sortIDs := func(ids [][]byte) {
		sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i], ids[j]) < 0 })
	}
	sortIDs(pIDs)
	sortIDs(rIDs)

	if len(pIDs) != len(rIDs) {
		t.Fatalf("rotation set sizes differ: %d vs %d", len(pIDs), len(rIDs))
	}
	for i := range pIDs {
		if !bytes.Equal(pIDs[i], rIDs[i]) {
			t.Fatalf("rotation sets differ at index %d", i)
		}
	}
}

func TestRotationsEarlyExit(t *testing.T) {
	g := boxGrid(t, 2, 3, 4, [][3]int{{0, 0, 0}})
	n := 0
	for range Rotations(g) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("expected the range loop to stop after 3 rotations, stopped after %d", n)
	}
}
