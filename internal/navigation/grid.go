package navigation

import "math"

// DefaultInflation is the buffer, in cells, added around every stamped obstacle.
const DefaultInflation = 0.5

// Occupancy is a row-major boolean grid. Cells outside the grid are blocked.
type Occupancy interface {
	Rows() int
	Cols() int
	Blocked(c Cell) bool
}

// Grid is an obstacle occupancy grid covering the board.
type Grid struct {
	cols      int
	rows      int
	cells     []bool // row-major, true = blocked
	inflation float64
}

// NewGrid creates an empty grid. A negative inflation is treated as zero.
func NewGrid(cols, rows int, inflation float64) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if inflation < 0 {
		inflation = 0
	}
	return &Grid{
		cols:      cols,
		rows:      rows,
		cells:     make([]bool, cols*rows),
		inflation: inflation,
	}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// Inflation returns the buffer added to stamped radii.
func (g *Grid) Inflation() float64 { return g.inflation }

// Blocked reports whether a cell is covered by an obstacle footprint.
func (g *Grid) Blocked(c Cell) bool {
	if !g.inBounds(c.Row, c.Col) {
		return true
	}
	return g.cells[c.Row*g.cols+c.Col]
}

// Count returns the number of blocked cells.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.cells {
		if b {
			n++
		}
	}
	return n
}

// SetObstacle marks, or clears, every cell within radius of (x, y). When
// inflate is set the grid's inflation buffer is added first. The radius is
// rounded up to a whole number of cells and one quadrant of the disc is
// rasterized, then mirrored into the other three. Cells off the grid are
// dropped.
func (g *Grid) SetObstacle(x, y, radius float64, clear, inflate bool) {
	fp := newFootprint(x, y, radius, inflate, g.inflation)
	cx, cy := fp.center.Col, fp.center.Row
	r := fp.radius

	for col := cx - r; col <= cx; col++ {
		for row := cy - r; row <= cy; row++ {
			dx, dy := col-cx, row-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			colSym := cx - dx
			rowSym := cy - dy
			g.set(row, col, !clear)
			g.set(rowSym, col, !clear)
			g.set(row, colSym, !clear)
			g.set(rowSym, colSym, !clear)
		}
	}
}

// AddObstacles stamps every obstacle with inflation.
func (g *Grid) AddObstacles(obstacles []Obstacle) {
	for _, o := range obstacles {
		x, y := o.Center()
		g.SetObstacle(x, y, o.Radius(), false, true)
	}
}

// Map returns a view of the grid with nothing excluded.
func (g *Grid) Map() View {
	return View{grid: g}
}

// MapForShip returns a view in which the ship's own footprint, without
// inflation, reads as free. The grid itself is not modified, so views for
// different ships can coexist.
func (g *Grid) MapForShip(ship Obstacle) View {
	x, y := ship.Center()
	fp := newFootprint(x, y, ship.Radius(), false, 0)
	return View{grid: g, exclude: &fp}
}

func (g *Grid) set(row, col int, v bool) {
	if !g.inBounds(row, col) {
		return
	}
	g.cells[row*g.cols+col] = v
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.cols
}

// footprint is the rasterized disc stamped for an obstacle.
type footprint struct {
	center Cell
	radius int
}

func newFootprint(x, y, radius float64, inflate bool, inflation float64) footprint {
	if radius < 0 {
		radius = 0
	}
	if inflate {
		radius += inflation
	}
	return footprint{
		center: CellAt(x, y),
		radius: int(math.Ceil(radius)),
	}
}

func (f footprint) contains(c Cell) bool {
	dx := c.Col - f.center.Col
	dy := c.Row - f.center.Row
	return dx*dx+dy*dy <= f.radius*f.radius
}

// View is a read-only overlay of a Grid, optionally excluding one ship's
// footprint.
type View struct {
	grid    *Grid
	exclude *footprint
}

// Rows returns the grid height.
func (v View) Rows() int { return v.grid.rows }

// Cols returns the grid width.
func (v View) Cols() int { return v.grid.cols }

// Blocked reports whether the cell is occupied in this view.
func (v View) Blocked(c Cell) bool {
	if !v.grid.Blocked(c) {
		return false
	}
	if v.exclude != nil && v.grid.inBounds(c.Row, c.Col) && v.exclude.contains(c) {
		return false
	}
	return true
}

// Matrix is a plain row-major occupancy matrix, m[row][col] == true when
// blocked.
type Matrix [][]bool

// NewMatrix returns an all-free matrix.
func NewMatrix(cols, rows int) Matrix {
	m := make(Matrix, rows)
	for r := range m {
		m[r] = make([]bool, cols)
	}
	return m
}

// Rows returns the matrix height.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the matrix width.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Blocked reports whether m[c.Row][c.Col] is set. Cells off the matrix are
// blocked.
func (m Matrix) Blocked(c Cell) bool {
	if c.Row < 0 || c.Row >= len(m) || c.Col < 0 || c.Col >= len(m[c.Row]) {
		return true
	}
	return m[c.Row][c.Col]
}
