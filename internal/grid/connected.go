package grid

// Connected reports whether every occupied cell of g is reachable from
// every other occupied cell through a chain of face-adjacent occupied
// cells. An empty grid is trivially connected.
func Connected(g Grid) bool {
	dx, dy, dz := int(g.Dx), int(g.Dy), int(g.Dz)
	var start [3]int
	found := false
	total := 0
	for x := 0; x < dx && !found; x++ {
		for y := 0; y < dy && !found; y++ {
			for z := 0; z < dz; z++ {
				if g.Get(x, y, z) {
					start = [3]int{x, y, z}
					found = true
					break
				}
			}
		}
	}
	if !found {
		return true
	}
	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			for z := 0; z < dz; z++ {
				if g.Get(x, y, z) {
					total++
				}
			}
		}
	}

	visited := make(map[[3]int]bool, total)
	stack := [][3]int{start}
	visited[start] = true
	offsets := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, o := range offsets {
			n := [3]int{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
			if visited[n] {
				continue
			}
			if g.Get(n[0], n[1], n[2]) {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return len(visited) == total
}

// BoundaryFacesOccupied reports whether every one of g's six bounding
// faces (x=0, x=Dx-1, y=0, y=Dy-1, z=0, z=Dz-1) has at least one
// occupied cell, i.e. g is already cropped.
func BoundaryFacesOccupied(g Grid) bool {
	dx, dy, dz := int(g.Dx), int(g.Dy), int(g.Dz)
	faces := [6]bool{}
	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			for z := 0; z < dz; z++ {
				if !g.Get(x, y, z) {
					continue
				}
				if x == 0 {
					faces[0] = true
				}
				if x == dx-1 {
					faces[1] = true
				}
				if y == 0 {
					faces[2] = true
				}
				if y == dy-1 {
					faces[3] = true
				}
				if z == 0 {
					faces[4] = true
				}
				if z == dz-1 {
					faces[5] = true
				}
			}
		}
	}
	for _, f := range faces {
		if !f {
			return false
		}
	}
	return true
}
