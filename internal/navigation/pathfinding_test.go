package navigation

import (
	"errors"
	"math/rand"
	"testing"
)

func TestFindPath_SameStartGoal(t *testing.T) {
	m := NewMatrix(5, 5)
	res, err := FindPath(Cell{Row: 2, Col: 2}, Cell{Row: 2, Col: 2}, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Path) != 0 {
		t.Errorf("expected empty path, got %v", res.Path)
	}
	if res.Expanded != 0 {
		t.Errorf("expected zero search steps, got %d", res.Expanded)
	}

	// Even a blocked cell is trivially reached from itself.
	m[1][1] = true
	if _, err := FindPath(Cell{Row: 1, Col: 1}, Cell{Row: 1, Col: 1}, m); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFindPath_Simple(t *testing.T) {
	m := NewMatrix(5, 5)
	start, goal := Cell{Row: 0, Col: 0}, Cell{Row: 4, Col: 4}

	res, err := FindPath(start, goal, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathValid(t, res.Path, start, goal, m)
	if len(res.Path) != 9 {
		t.Errorf("expected 9 cells on an open grid, got %d", len(res.Path))
	}
	if res.Expanded == 0 {
		t.Error("expected at least one expansion")
	}
}

func TestFindPath_BlockedEndpoint(t *testing.T) {
	m := matrixFromArt(t,
		"#....",
		".....",
		".....",
		".....",
		"....#",
	)

	tests := []struct {
		name        string
		start, goal Cell
	}{
		{"blocked start", Cell{Row: 0, Col: 0}, Cell{Row: 2, Col: 2}},
		{"blocked goal", Cell{Row: 2, Col: 2}, Cell{Row: 4, Col: 4}},
		{"start off grid", Cell{Row: -1, Col: 0}, Cell{Row: 2, Col: 2}},
		{"goal off grid", Cell{Row: 2, Col: 2}, Cell{Row: 2, Col: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := FindPath(tt.start, tt.goal, m)
			if !errors.Is(err, ErrBlockedEndpoint) {
				t.Fatalf("expected ErrBlockedEndpoint, got %v", err)
			}
			if errors.Is(err, ErrNoPathFound) {
				t.Error("blocked endpoint must not report no path")
			}
			if res.Expanded != 0 {
				t.Errorf("expected no search, got %d expansions", res.Expanded)
			}
		})
	}
}

func TestFindPath_Detour(t *testing.T) {
	m := matrixFromArt(t,
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	start, goal := Cell{Row: 2, Col: 0}, Cell{Row: 2, Col: 4}

	res, err := FindPath(start, goal, m)
	if err != nil {
		t.Fatalf("expected path around obstacle, got %v", err)
	}
	assertPathValid(t, res.Path, start, goal, m)
}

func TestFindPath_WallWithGapAtTop(t *testing.T) {
	m := NewMatrix(10, 10)
	for row := 1; row <= 9; row++ {
		m[row][5] = true
	}
	start, goal := Cell{Row: 2, Col: 2}, Cell{Row: 2, Col: 8}

	res, err := FindPath(start, goal, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPathValid(t, res.Path, start, goal, m)

	throughGap := false
	for _, c := range res.Path {
		if c == (Cell{Row: 0, Col: 5}) {
			throughGap = true
		}
	}
	if !throughGap {
		t.Errorf("expected path through row 0, got %v", res.Path)
	}
}

func TestFindPath_NoPath(t *testing.T) {
	m := matrixFromArt(t,
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
	)

	res, err := FindPath(Cell{Row: 2, Col: 0}, Cell{Row: 2, Col: 4}, m)
	if !errors.Is(err, ErrNoPathFound) {
		t.Fatalf("expected ErrNoPathFound, got %v", err)
	}
	if res.Path != nil {
		t.Errorf("expected no path, got %v", res.Path)
	}
	// Every free cell left of the wall is popped once.
	if res.Expanded != 9 {
		t.Errorf("expected 9 expansions, got %d", res.Expanded)
	}
}

func TestFindPath_NoDiagonalCornerCutting(t *testing.T) {
	m := matrixFromArt(t,
		".#",
		"#.",
	)
	if _, err := FindPath(Cell{Row: 0, Col: 0}, Cell{Row: 1, Col: 1}, m); !errors.Is(err, ErrNoPathFound) {
		t.Errorf("expected diagonal gap to be impassable, got %v", err)
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	m := NewMatrix(12, 12)
	start, goal := Cell{Row: 1, Col: 1}, Cell{Row: 10, Col: 9}

	first, err := FindPath(start, goal, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _ := FindPath(start, goal, m)
		if len(again.Path) != len(first.Path) {
			t.Fatalf("run %d: path length %d, want %d", i, len(again.Path), len(first.Path))
		}
		for j := range again.Path {
			if again.Path[j] != first.Path[j] {
				t.Fatalf("run %d: step %d differs: %v vs %v", i, j, again.Path[j], first.Path[j])
			}
		}
	}
}

func TestFindPath_RandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	found := 0

	for trial := 0; trial < 200; trial++ {
		m := NewMatrix(15, 15)
		for r := range m {
			for c := range m[r] {
				m[r][c] = rng.Float64() < 0.25
			}
		}
		start := Cell{Row: rng.Intn(15), Col: rng.Intn(15)}
		goal := Cell{Row: rng.Intn(15), Col: rng.Intn(15)}
		m[start.Row][start.Col] = false
		m[goal.Row][goal.Col] = false

		res, err := FindPath(start, goal, m)
		switch {
		case start == goal:
			if err != nil || len(res.Path) != 0 {
				t.Fatalf("trial %d: expected empty path, got %v, %v", trial, res.Path, err)
			}
		case err == nil:
			found++
			assertPathValid(t, res.Path, start, goal, m)
		case !errors.Is(err, ErrNoPathFound):
			t.Fatalf("trial %d: unexpected error %v", trial, err)
		}
	}

	if found == 0 {
		t.Error("expected at least some random grids to be solvable")
	}
}
