package navigation

import "container/heap"

// PathNode is a discovered cell in the search frontier.
type PathNode struct {
	Cell   Cell
	G      int     // Moves from start
	H      float64 // Straight-line distance to goal
	F      float64 // Priority (G + H)
	Parent *PathNode
	seq    int // Discovery order, last tie-breaker
	index  int // Index in heap
}

// PathHeap implements a priority queue for the search frontier.
type PathHeap []*PathNode

func (h PathHeap) Len() int { return len(h) }

func (h PathHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.F != b.F {
		return a.F < b.F
	}
	if a.Cell != b.Cell {
		return a.Cell.less(b.Cell)
	}
	return a.seq < b.seq
}

func (h PathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *PathHeap) Push(x interface{}) {
	n := len(*h)
	node := x.(*PathNode)
	node.index = n
	*h = append(*h, node)
}

func (h *PathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// SearchResult is the outcome of a successful FindPath call.
type SearchResult struct {
	Path     []Cell // Start to goal inclusive; empty when start == goal
	Expanded int    // Nodes popped from the frontier
}

// Orthogonal moves: down, right, up, left.
var directions = [4]Cell{
	{Row: 1, Col: 0},
	{Row: 0, Col: 1},
	{Row: -1, Col: 0},
	{Row: 0, Col: -1},
}

// FindPath searches a 4-connected grid from start to goal.
//
// Nodes are ordered by moves-so-far plus straight-line distance to goal, and
// a cell is closed as soon as it is discovered. Neither choice keeps the
// result shortest; the search trades optimality for a bounded per-cycle cost.
// It returns ErrBlockedEndpoint when start or goal is occupied or off the
// grid, and ErrNoPathFound when the frontier is exhausted.
func FindPath(start, goal Cell, occ Occupancy) (SearchResult, error) {
	if start == goal {
		return SearchResult{}, nil
	}
	if !inside(occ, start) || !inside(occ, goal) {
		return SearchResult{}, ErrBlockedEndpoint
	}
	if occ.Blocked(start) || occ.Blocked(goal) {
		return SearchResult{}, ErrBlockedEndpoint
	}

	open := &PathHeap{}
	heap.Init(open)

	seen := make(map[Cell]struct{})
	seen[start] = struct{}{}
	seq := 0

	root := &PathNode{Cell: start}
	expanded := 0
	current := root

	for {
		for _, d := range directions {
			next := Cell{Row: current.Cell.Row + d.Row, Col: current.Cell.Col + d.Col}
			if !inside(occ, next) || occ.Blocked(next) {
				continue
			}
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			seq++

			node := &PathNode{
				Cell:   next,
				G:      current.G + 1,
				H:      Heuristic(next, goal),
				Parent: current,
				seq:    seq,
			}
			node.F = float64(node.G) + node.H
			heap.Push(open, node)
		}

		if open.Len() == 0 {
			return SearchResult{Expanded: expanded}, ErrNoPathFound
		}

		current = heap.Pop(open).(*PathNode)
		expanded++

		if current.Cell == goal {
			return SearchResult{Path: reconstructPath(current), Expanded: expanded}, nil
		}
	}
}

// Heuristic returns the straight-line distance used to order the frontier.
func Heuristic(from, to Cell) float64 {
	return from.Distance(to)
}

func inside(occ Occupancy, c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < occ.Rows() && c.Col < occ.Cols()
}

func reconstructPath(node *PathNode) []Cell {
	path := make([]Cell, 0, node.G+1)
	for node != nil {
		path = append(path, node.Cell)
		node = node.Parent
	}
	// Reverse path (it's built from goal to start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
