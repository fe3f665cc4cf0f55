package arena

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Faultbox/swarmnav/internal/navigation"
)

// Arena errors.
var (
	ErrUnknownShip     = errors.New("unknown ship")
	ErrUnknownPlanet   = errors.New("unknown planet")
	ErrInvalidScenario = errors.New("invalid scenario")
)

// R-tree branching factors; a Halite map holds at most a few hundred bodies.
const (
	minChildren = 4
	maxChildren = 16
)

// Snapshot is the state of the board at the start of one decision cycle.
// It is read-only once built.
type Snapshot struct {
	Width, Height int
	Me            int
	Planets       []*Entity
	Ships         []*Entity

	planets   map[int]*Entity
	ships     map[int]*Entity
	index     *rtreego.Rtree
	maxRadius float64
}

// NewSnapshot validates the entities and indexes them. Kinds are set from
// the slice each entity arrives in.
func NewSnapshot(width, height, me int, planets, ships []*Entity) (*Snapshot, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: board %dx%d", ErrInvalidScenario, width, height)
	}

	s := &Snapshot{
		Width:   width,
		Height:  height,
		Me:      me,
		Planets: planets,
		Ships:   ships,
		planets: make(map[int]*Entity, len(planets)),
		ships:   make(map[int]*Entity, len(ships)),
	}

	// No body may be wider than the board itself.
	diagonal := math.Hypot(float64(width), float64(height))

	spatials := make([]rtreego.Spatial, 0, len(planets)+len(ships))
	add := func(e *Entity, kind Kind, byID map[int]*Entity) error {
		e.Kind = kind
		if _, dup := byID[e.ID]; dup {
			return fmt.Errorf("%w: duplicate %s id %d", ErrInvalidScenario, kind, e.ID)
		}
		if e.Radius < 0 || math.IsNaN(e.Radius) || e.Radius > diagonal {
			return fmt.Errorf("%w: %s %d has radius %g", ErrInvalidScenario, kind, e.ID, e.Radius)
		}
		if !finite(e.X) || !finite(e.Y) {
			return fmt.Errorf("%w: %s %d has position (%g,%g)", ErrInvalidScenario, kind, e.ID, e.X, e.Y)
		}
		if e.DockingSpots < 0 {
			return fmt.Errorf("%w: %s %d has %d docking spots", ErrInvalidScenario, kind, e.ID, e.DockingSpots)
		}
		if e.X < 0 || e.Y < 0 || e.X > float64(width) || e.Y > float64(height) {
			return fmt.Errorf("%w: %s %d at (%g,%g) is off the board", ErrInvalidScenario, kind, e.ID, e.X, e.Y)
		}
		byID[e.ID] = e
		spatials = append(spatials, e)
		s.maxRadius = math.Max(s.maxRadius, e.Radius)
		return nil
	}

	for _, p := range planets {
		if err := add(p, KindPlanet, s.planets); err != nil {
			return nil, err
		}
	}
	for _, sh := range ships {
		if err := add(sh, KindShip, s.ships); err != nil {
			return nil, err
		}
	}

	s.index = rtreego.NewTree(2, minChildren, maxChildren, spatials...)
	return s, nil
}

// Board returns the navigation board for this snapshot.
func (s *Snapshot) Board() navigation.Board {
	return navigation.Board{Width: s.Width, Height: s.Height}
}

// Obstacles returns planets and ships in the form the planner consumes.
func (s *Snapshot) Obstacles() (planets, ships []navigation.Obstacle) {
	planets = make([]navigation.Obstacle, len(s.Planets))
	for i, p := range s.Planets {
		planets[i] = p.Obstacle()
	}
	ships = make([]navigation.Obstacle, len(s.Ships))
	for i, sh := range s.Ships {
		ships[i] = sh.Obstacle()
	}
	return planets, ships
}

// Ship looks up a ship by ID.
func (s *Snapshot) Ship(id int) (*Entity, error) {
	if e, ok := s.ships[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownShip, id)
}

// Planet looks up a planet by ID.
func (s *Snapshot) Planet(id int) (*Entity, error) {
	if e, ok := s.planets[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPlanet, id)
}

// MyShips returns the ships owned by the current player in input order.
func (s *Snapshot) MyShips() []*Entity {
	var mine []*Entity
	for _, sh := range s.Ships {
		if sh.Owner == s.Me {
			mine = append(mine, sh)
		}
	}
	return mine
}

// NearestPlanets returns up to k planets accepted by filter, closest surface
// first. A nil filter accepts every planet.
func (s *Snapshot) NearestPlanets(x, y float64, k int, filter func(*Entity) bool) []*Entity {
	return s.nearest(KindPlanet, x, y, k, filter)
}

// NearestShips returns up to k ships accepted by filter, closest surface
// first. A nil filter accepts every ship.
func (s *Snapshot) NearestShips(x, y float64, k int, filter func(*Entity) bool) []*Entity {
	return s.nearest(KindShip, x, y, k, filter)
}

func (s *Snapshot) nearest(kind Kind, x, y float64, k int, filter func(*Entity) bool) []*Entity {
	if k <= 0 || s.index.Size() == 0 {
		return nil
	}

	accept := func(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
		e := obj.(*Entity)
		if e.Kind != kind {
			return true, false
		}
		return filter != nil && !filter(e), false
	}

	found := s.index.NearestNeighbors(k, rtreego.Point{x, y}, accept)
	from := orb.Point{x, y}

	out := make([]*Entity, 0, len(found))
	for _, obj := range found {
		if obj == nil {
			continue
		}
		out = append(out, obj.(*Entity))
	}
	sort.SliceStable(out, func(i, j int) bool {
		di := planar.Distance(from, out[i].Point()) - out[i].Radius
		dj := planar.Distance(from, out[j].Point()) - out[j].Radius
		if di != dj {
			return di < dj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ObstaclesIn returns every entity whose bounding box touches b, planets
// first, each group ordered by ID.
func (s *Snapshot) ObstaclesIn(b orb.Bound) []*Entity {
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		rtreego.Point{b.Max.X(), b.Max.Y()},
	)
	if err != nil {
		return nil
	}

	var out []*Entity
	for _, obj := range s.index.SearchIntersect(rect) {
		e := obj.(*Entity)
		if e.Bound().Intersects(b) {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out
}

// ObstaclesBetween returns the entities whose body, grown by clearance,
// crosses the segment from a to b. Entities listed in skip are ignored.
func (s *Snapshot) ObstaclesBetween(a, b orb.Point, clearance float64, skip ...*Entity) []*Entity {
	region := orb.MultiPoint{a, b}.Bound().Pad(s.maxRadius + clearance)

	var out []*Entity
	for _, e := range s.ObstaclesIn(region) {
		if skipped(e, skip) {
			continue
		}
		if planar.DistanceFromSegment(a, b, e.Point()) <= e.Radius+clearance {
			out = append(out, e)
		}
	}
	return out
}

// ApproachCell returns the board cell minDistance beyond target's surface on
// the side facing ship, clamped to the board.
func (s *Snapshot) ApproachCell(ship, target *Entity, minDistance float64) navigation.Cell {
	p := ship.ApproachPoint(target, minDistance)
	x := math.Min(math.Max(p.X(), 0), float64(s.Width-1))
	y := math.Min(math.Max(p.Y(), 0), float64(s.Height-1))
	return navigation.CellAt(x, y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func skipped(e *Entity, skip []*Entity) bool {
	for _, other := range skip {
		if e == other {
			return true
		}
	}
	return false
}

func sortEntities(es []*Entity) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].Kind != es[j].Kind {
			return es[i].Kind < es[j].Kind
		}
		return es[i].ID < es[j].ID
	})
}
