// Package rotate yields the 24 proper rotations of a cube applied to a
// grid.Grid, reusing the six quarter-turn compositions described in the
// specification (and originally implemented with numpy's rot90 in
// original_source/libraries/rotation.py).
package rotate

import (
	"iter"
	"sort"

	"github.com/mikepound/opencubes/internal/grid"
)

type coord = [3]int

func dims(g grid.Grid) coord { return coord{int(g.Dx), int(g.Dy), int(g.Dz)} }

// flipAxis reverses the coordinate order of g along the given axis
// (0=x, 1=y, 2=z), leaving the other two axes untouched.
func flipAxis(g grid.Grid, axis int) grid.Grid {
	d := dims(g)
	out, err := grid.New(d[0], d[1], d[2])
	if err != nil {
		panic(err)
	}
	for x := 0; x < d[0]; x++ {
		for y := 0; y < d[1]; y++ {
			for z := 0; z < d[2]; z++ {
				if !g.Get(x, y, z) {
					continue
				}
				c := coord{x, y, z}
				nc := c
				nc[axis] = d[axis] - 1 - c[axis]
				out.Set(nc[0], nc[1], nc[2], true)
			}
		}
	}
	return out
}

// swapAxes transposes axes a and b: the returned grid's dimension a is
// g's dimension b and vice versa, matching numpy.transpose with those
// two axis positions exchanged.
func swapAxes(g grid.Grid, a, b int) grid.Grid {
	d := dims(g)
	nd := d
	nd[a], nd[b] = d[b], d[a]
	out, err := grid.New(nd[0], nd[1], nd[2])
	if err != nil {
		panic(err)
	}
	for x := 0; x < d[0]; x++ {
		for y := 0; y < d[1]; y++ {
			for z := 0; z < d[2]; z++ {
				if !g.Get(x, y, z) {
					continue
				}
				c := coord{x, y, z}
				nc := c
				nc[a], nc[b] = c[b], c[a]
				out.Set(nc[0], nc[1], nc[2], true)
			}
		}
	}
	return out
}

// rot90 rotates g by 90*k degrees in the plane spanned by axes a, b,
// following numpy's rot90(m, k, axes=(a,b)) identity:
//
//	k=0: identity
//	k=1: transpose(flip(m, b), swap(a,b))
//	k=2: flip(flip(m, a), b)
//	k=3: flip(transpose(m, swap(a,b)), b)
func rot90(g grid.Grid, k, a, b int) grid.Grid {
	switch ((k % 4) + 4) % 4 {
	case 0:
		return g.Clone()
	case 1:
		return swapAxes(flipAxis(g, b), a, b)
	case 2:
		return flipAxis(flipAxis(g, a), b)
	default: // 3
		return flipAxis(swapAxes(g, a, b), b)
	}
}

// batch is one of the 6 groups of 4 quarter-turns described in the
// specification's rotator design. The 4 turns of a batch rotate within
// the plane (a, b): turns k=0 and k=2 keep base's bounding-box
// dimensions, while k=1 and k=3 exchange the sizes of axes a and b.
type batch struct {
	base grid.Grid // one representative of the batch (k=0)
	a, b int        // the plane the 4 quarter turns rotate within
}

func batches(g grid.Grid) []batch {
	return []batch{
		{g, 1, 2},
		{rot90(g, 2, 0, 2), 1, 2},
		{rot90(g, 1, 0, 2), 0, 1},
		{rot90(g, -1, 0, 2), 0, 1},
		{rot90(g, 1, 0, 1), 0, 2},
		{rot90(g, -1, 0, 1), 0, 2},
	}
}

// Rotations lazily yields the 24 proper rotations of g (possibly with
// duplicate grids when g has rotational symmetry), in the fixed order
// described in the specification. Consumers may stop iterating early
// (returning false from the range body), in which case the remaining
// rotations are never computed.
func Rotations(g grid.Grid) iter.Seq[grid.Grid] {
	return func(yield func(grid.Grid) bool) {
		for _, bt := range batches(g) {
			for k := 0; k < 4; k++ {
				if !yield(rot90(bt.base, k, bt.a, bt.b)) {
					return
				}
			}
		}
	}
}

// Signature classifies a grid's bounding box by how many of its 24
// rotations can possibly be the lexicographic-maximum identifier: since
// an identifier's 3-byte shape header sorts before its body, only
// rotations whose resulting header is itself header-maximal (dims
// sorted descending) can ever win the comparison. All-distinct
// dimensions admit exactly one header-maximizing axis ordering (4
// rotations share it); exactly two equal dimensions admit two orderings
// (8 rotations); all three equal admit all six (24 rotations).
func Signature(g grid.Grid) int {
	dx, dy, dz := g.Dx, g.Dy, g.Dz
	switch {
	case dx == dy && dy == dz:
		return 24
	case dx == dy || dy == dz || dx == dz:
		return 8
	default:
		return 4
	}
}

// RotationsDistinct yields only the rotations of g whose bounding-box
// header is lexicographically maximal among all 24 possible headers,
// i.e. exactly the candidates that can possibly equal
// canon.CanonicalShapeInvariant(g). It is provided for documentation
// and benchmarking: canonicalization with early-exit against a known
// set (internal/canon.Canonical) still ranges over the full Rotations
// sequence, since early-exit may terminate well before reaching even
// the header-maximal rotations.
func RotationsDistinct(g grid.Grid) iter.Seq[grid.Grid] {
	target := sortedDesc(dims(g))
	return func(yield func(grid.Grid) bool) {
		for _, bt := range batches(g) {
			for k := 0; k < 4; k++ {
				r := rot90(bt.base, k, bt.a, bt.b)
				if dims(r) != target {
					continue
				}
				if !yield(r) {
					return
				}
			}
		}
	}
}

func sortedDesc(c coord) coord {
	s := []int{c[0], c[1], c[2]}
	sort.Sort(sort.Reverse(sort.IntSlice(s)))
	return coord{s[0], s[1], s[2]}
}
