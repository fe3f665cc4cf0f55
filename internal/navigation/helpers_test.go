package navigation

import "testing"

// testBody is a minimal Obstacle for tests.
type testBody struct {
	id     int
	x, y   float64
	radius float64
}

func (b testBody) ID() int                { return b.id }
func (b testBody) Center() (x, y float64) { return b.x, b.y }
func (b testBody) Radius() float64        { return b.radius }

// matrixFromArt builds a Matrix from rows of '#' (blocked) and '.' (free).
func matrixFromArt(t *testing.T, rows ...string) Matrix {
	t.Helper()
	m := make(Matrix, len(rows))
	for r, line := range rows {
		if len(line) != len(rows[0]) {
			t.Fatalf("row %d has width %d, want %d", r, len(line), len(rows[0]))
		}
		m[r] = make([]bool, len(line))
		for c, ch := range line {
			m[r][c] = ch == '#'
		}
	}
	return m
}

// assertPathValid checks that a path is 4-connected, unobstructed and runs
// from start to goal.
func assertPathValid(t *testing.T, path []Cell, start, goal Cell, occ Occupancy) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("expected non-empty path")
	}
	if path[0] != start {
		t.Errorf("path should start at %v, got %v", start, path[0])
	}
	if last := path[len(path)-1]; last != goal {
		t.Errorf("path should end at %v, got %v", goal, last)
	}
	for i, c := range path {
		if occ.Blocked(c) {
			t.Errorf("path step %d at %v is blocked", i, c)
		}
		if i == 0 {
			continue
		}
		prev := path[i-1]
		if abs(c.Row-prev.Row)+abs(c.Col-prev.Col) != 1 {
			t.Errorf("path step %d: %v -> %v is not an orthogonal move", i, prev, c)
		}
	}
}
