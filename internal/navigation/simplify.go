package navigation

// Line returns every cell the segment between the centers of a and b passes
// through, from a to b inclusive. When the segment crosses a cell corner
// exactly, the walk steps diagonally.
func Line(a, b Cell) []Cell {
	dx := b.Col - a.Col
	dy := b.Row - a.Row
	nx, ny := abs(dx), abs(dy)
	sx, sy := sign(dx), sign(dy)

	cells := make([]Cell, 0, nx+ny+1)
	p := a
	cells = append(cells, p)

	for ix, iy := 0, 0; ix < nx || iy < ny; {
		// Compare where the segment crosses the next vertical and horizontal
		// cell boundaries; both sides are scaled by 2*nx*ny.
		decision := (1+2*ix)*ny - (1+2*iy)*nx
		switch {
		case nx == 0:
			p.Row += sy
			iy++
		case ny == 0:
			p.Col += sx
			ix++
		case decision == 0:
			p.Col += sx
			p.Row += sy
			ix++
			iy++
		case decision < 0:
			p.Col += sx
			ix++
		default:
			p.Row += sy
			iy++
		}
		cells = append(cells, p)
	}
	return cells
}

// LineClear reports whether no cell on the line from a to b is blocked.
func LineClear(a, b Cell, occ Occupancy) bool {
	for _, c := range Line(a, b) {
		if occ.Blocked(c) {
			return false
		}
	}
	return true
}

// Simplify reduces a path to its longest unobstructed first hop: the segment
// from path[0] to the farthest path cell reachable in a straight line before
// the first obstructed one. If even path[1] is not in line of sight the hop
// is degenerate (path[0] to path[0]). An empty path yields a zero Hop.
func Simplify(path []Cell, occ Occupancy) Hop {
	if len(path) == 0 {
		return Hop{}
	}
	hop := Hop{From: path[0], To: path[0]}
	for _, c := range path[1:] {
		if !LineClear(path[0], c, occ) {
			break
		}
		hop.To = c
	}
	return hop
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
