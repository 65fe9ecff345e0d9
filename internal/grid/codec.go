package grid

import (
	"bytes"

	"github.com/pkg/errors"
)

// Pack converts a grid into its identifier: 3 shape bytes (dx, dy, dz)
// followed by the packed body, bits ordered little-endian within each
// byte, flattened row-major with axis 0 slowest.
func Pack(g Grid) ([]byte, error) {
	if g.Dx < 1 || g.Dy < 1 || g.Dz < 1 {
		return nil, errors.New("grid: cannot pack a grid with a zero dimension")
	}
	id := make([]byte, 3+len(g.Bits))
	id[0], id[1], id[2] = g.Dx, g.Dy, g.Dz
	copy(id[3:], g.Bits)
	return id, nil
}

// Unpack reverses Pack, reading the shape header and allocating a grid
// sized to hold exactly dx*dy*dz bits from the body.
func Unpack(id []byte) (Grid, error) {
	if len(id) < 3 {
		return Grid{}, errors.New("grid: identifier shorter than the 3-byte header")
	}
	dx, dy, dz := id[0], id[1], id[2]
	count := int(dx) * int(dy) * int(dz)
	wantBytes := (count + 7) / 8
	body := id[3:]
	if len(body) != wantBytes {
		return Grid{}, errors.Errorf("grid: identifier body has %d bytes, want %d for shape (%d,%d,%d)", len(body), wantBytes, dx, dy, dz)
	}
	bits := make([]byte, wantBytes)
	copy(bits, body)
	return Grid{Dx: dx, Dy: dy, Dz: dz, Bits: bits}, nil
}

// Ord returns the unsigned lexicographic comparison of two identifiers:
// -1 if a < b, 0 if equal, 1 if a > b.
func Ord(a, b []byte) int {
	return bytes.Compare(a, b)
}
