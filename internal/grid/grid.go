// Package grid implements the dense 3D {0,1} lattice that a polycube is
// stored as, and the compact byte identifier that represents it.
package grid

import "github.com/pkg/errors"

// MaxDim is the largest size a single axis of a grid may have; the
// identifier header reserves exactly one byte per axis.
const MaxDim = 255

// Grid is a dense 3D bit lattice. Cell (x, y, z) is set iff a unit cube
// occupies that lattice position. Axis 0 is the slowest-varying axis in
// the flattened bit layout, axis 2 the fastest.
type Grid struct {
	Dx, Dy, Dz uint8
	Bits       []byte
}

// New allocates an empty grid of the given dimensions. Every dimension
// must be in [1, MaxDim].
func New(dx, dy, dz int) (Grid, error) {
	if dx < 1 || dy < 1 || dz < 1 || dx > MaxDim || dy > MaxDim || dz > MaxDim {
		return Grid{}, errors.Errorf("grid: invalid dimensions (%d, %d, %d)", dx, dy, dz)
	}
	count := dx * dy * dz
	return Grid{
		Dx:   uint8(dx),
		Dy:   uint8(dy),
		Dz:   uint8(dz),
		Bits: make([]byte, (count+7)/8),
	}, nil
}

// index returns the flat bit index of cell (x, y, z), axis 0 slowest.
func (g Grid) index(x, y, z int) int {
	return (x*int(g.Dy)+y)*int(g.Dz) + z
}

// Get reports whether cell (x, y, z) is occupied. Out-of-range
// coordinates are treated as unoccupied, which simplifies the expander's
// padded-neighbor scan.
func (g Grid) Get(x, y, z int) bool {
	if x < 0 || y < 0 || z < 0 || x >= int(g.Dx) || y >= int(g.Dy) || z >= int(g.Dz) {
		return false
	}
	i := g.index(x, y, z)
	return g.Bits[i/8]&(1<<uint(i%8)) != 0
}

// Set occupies or clears cell (x, y, z).
func (g Grid) Set(x, y, z int, v bool) {
	i := g.index(x, y, z)
	if v {
		g.Bits[i/8] |= 1 << uint(i%8)
	} else {
		g.Bits[i/8] &^= 1 << uint(i%8)
	}
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	total := int(g.Dx) * int(g.Dy) * int(g.Dz)
	for i := 0; i < total; i++ {
		if g.Bits[i/8]&(1<<uint(i%8)) != 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of g.
func (g Grid) Clone() Grid {
	bits := make([]byte, len(g.Bits))
	copy(bits, g.Bits)
	return Grid{Dx: g.Dx, Dy: g.Dy, Dz: g.Dz, Bits: bits}
}

// Equal reports whether two grids have identical dimensions and bits.
func (g Grid) Equal(o Grid) bool {
	if g.Dx != o.Dx || g.Dy != o.Dy || g.Dz != o.Dz {
		return false
	}
	for i := range g.Bits {
		if g.Bits[i] != o.Bits[i] {
			return false
		}
	}
	return true
}
