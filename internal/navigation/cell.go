// Package navigation computes per-cycle movement instructions for ships on a
// discretized arena of circular obstacles.
package navigation

import (
	"fmt"
	"math"
)

// Cell is an integer grid coordinate. Row runs along the y axis and Col along
// the x axis; grids are indexed row-major.
type Cell struct {
	Row, Col int
}

// CellAt converts continuous arena coordinates to the cell containing them.
func CellAt(x, y float64) Cell {
	return Cell{Row: int(math.Round(y)), Col: int(math.Round(x))}
}

// String returns the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Distance returns the Euclidean distance between two cell centers.
func (c Cell) Distance(other Cell) float64 {
	dr := float64(other.Row - c.Row)
	dc := float64(other.Col - c.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// less orders cells by row, then column.
func (c Cell) less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Obstacle is a circular body that can occupy grid cells.
type Obstacle interface {
	ID() int
	Center() (x, y float64)
	Radius() float64
}

// Board holds the arena dimensions in cells.
type Board struct {
	Width  int
	Height int
}

// Contains reports whether a cell lies on the board.
func (b Board) Contains(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < b.Height && c.Col < b.Width
}

// Hop is the straight segment a ship travels this cycle.
type Hop struct {
	From, To Cell
}

// Degenerate reports whether the hop has zero length.
func (h Hop) Degenerate() bool {
	return h.From == h.To
}

// Length returns the Euclidean length of the hop in cells.
func (h Hop) Length() float64 {
	return h.From.Distance(h.To)
}
