package grid

// Crop returns the smallest sub-grid of g that contains every occupied
// cell; the result's bounding box equals its overall dimensions (every
// boundary face has at least one occupied cell), matching the "cropped
// grid" invariant from the data model. Crop panics if g is empty, since
// an empty polycube has no bounding box; callers must never crop an
// all-zero grid.
func Crop(g Grid) Grid {
	minX, minY, minZ := int(g.Dx), int(g.Dy), int(g.Dz)
	maxX, maxY, maxZ := -1, -1, -1

	for x := 0; x < int(g.Dx); x++ {
		for y := 0; y < int(g.Dy); y++ {
			for z := 0; z < int(g.Dz); z++ {
				if !g.Get(x, y, z) {
					continue
				}
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if z < minZ {
					minZ = z
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
				if z > maxZ {
					maxZ = z
				}
			}
		}
	}

	if maxX < 0 {
		panic("grid: Crop called on an empty grid")
	}

	dx, dy, dz := maxX-minX+1, maxY-minY+1, maxZ-minZ+1
	out, err := New(dx, dy, dz)
	if err != nil {
		// dx, dy, dz are derived from an existing, valid grid, so this
		// can only happen if g itself already violated MaxDim.
		panic(err)
	}
	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			for z := 0; z < dz; z++ {
				if g.Get(minX+x, minY+y, minZ+z) {
					out.Set(x, y, z, true)
				}
			}
		}
	}
	return out
}
