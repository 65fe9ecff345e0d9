// Package expand derives every size k+1 polycube reachable from a size
// k polycube by adding one face-adjacent cube, matching
// original_source/libraries/cropping.py's expand_cube.
package expand

import (
	"iter"

	"github.com/mikepound/opencubes/internal/grid"
)

var neighborOffsets = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// pad places p at offset (1,1,1) inside a grid 2 larger along every
// axis, giving every occupied cell room for a neighbor on every side.
func pad(p grid.Grid) grid.Grid {
	padded, err := grid.New(int(p.Dx)+2, int(p.Dy)+2, int(p.Dz)+2)
	if err != nil {
		panic(err)
	}
	for x := 0; x < int(p.Dx); x++ {
		for y := 0; y < int(p.Dy); y++ {
			for z := 0; z < int(p.Dz); z++ {
				if p.Get(x, y, z) {
					padded.Set(x+1, y+1, z+1, true)
				}
			}
		}
	}
	return padded
}

// candidates returns the coordinates, in row-major (x,y,z) order, of
// every empty cell in padded that is face-adjacent to at least one
// occupied cell.
func candidates(padded grid.Grid) [][3]int {
	dx, dy, dz := int(padded.Dx), int(padded.Dy), int(padded.Dz)
	marked := make([]bool, dx*dy*dz)
	idx := func(x, y, z int) int { return (x*dy+y)*dz + z }

	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			for z := 0; z < dz; z++ {
				if !padded.Get(x, y, z) {
					continue
				}
				for _, o := range neighborOffsets {
					nx, ny, nz := x+o[0], y+o[1], z+o[2]
					if nx < 0 || ny < 0 || nz < 0 || nx >= dx || ny >= dy || nz >= dz {
						continue
					}
					if !padded.Get(nx, ny, nz) {
						marked[idx(nx, ny, nz)] = true
					}
				}
			}
		}
	}

	var out [][3]int
	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			for z := 0; z < dz; z++ {
				if marked[idx(x, y, z)] {
					out = append(out, [3]int{x, y, z})
				}
			}
		}
	}
	return out
}

// Expand lazily yields every size k+1 polycube obtainable from p by
// adding one face-adjacent cube, each cropped to its bounding box. The
// same free shape may be yielded more than once (from different added
// cells, or as a rotation of another yielded grid); deduplication is
// the canonicalizer's job.
func Expand(p grid.Grid) iter.Seq[grid.Grid] {
	return func(yield func(grid.Grid) bool) {
		padded := pad(p)
		for _, c := range candidates(padded) {
			next := padded.Clone()
			next.Set(c[0], c[1], c[2], true)
			if !yield(grid.Crop(next)) {
				return
			}
		}
	}
}
