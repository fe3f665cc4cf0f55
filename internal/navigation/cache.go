package navigation

import "fmt"

// GridCache builds one Grid per obstacle category on first use and keeps it
// for the rest of the decision cycle. It is not safe for concurrent use.
type GridCache struct {
	board     Board
	inflation float64
	planets   []Obstacle
	ships     []Obstacle

	empty *Grid
	grids map[Category]*Grid
}

// NewGridCache creates a cache over the current cycle's obstacles.
func NewGridCache(board Board, planets, ships []Obstacle, inflation float64) *GridCache {
	return &GridCache{
		board:     board,
		inflation: inflation,
		planets:   planets,
		ships:     ships,
		empty:     NewGrid(board.Width, board.Height, inflation),
		grids:     make(map[Category]*Grid, len(Categories)-1),
	}
}

// Built reports whether the grid for a category has been built this cycle.
// The empty grid is always available.
func (gc *GridCache) Built(category Category) bool {
	if category == CategoryNone {
		return true
	}
	_, ok := gc.grids[category]
	return ok
}

// Grid returns the grid for a category, building it on first request.
func (gc *GridCache) Grid(category Category) (*Grid, error) {
	switch category {
	case CategoryNone:
		return gc.empty, nil
	case CategoryPlanets, CategoryShips, CategoryAll:
		if g, ok := gc.grids[category]; ok {
			return g, nil
		}
		g := gc.build(category)
		gc.grids[category] = g
		return g, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(category))
	}
}

// MapForShip resolves the category grid and returns its view for the ship.
func (gc *GridCache) MapForShip(ship Obstacle, category Category) (View, error) {
	g, err := gc.Grid(category)
	if err != nil {
		return View{}, err
	}
	return g.MapForShip(ship), nil
}

func (gc *GridCache) build(category Category) *Grid {
	g := NewGrid(gc.board.Width, gc.board.Height, gc.inflation)
	switch category {
	case CategoryPlanets:
		g.AddObstacles(gc.planets)
	case CategoryShips:
		g.AddObstacles(gc.ships)
	case CategoryAll:
		g.AddObstacles(gc.planets)
		g.AddObstacles(gc.ships)
	}
	return g
}
