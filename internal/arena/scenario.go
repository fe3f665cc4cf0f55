package arena

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/swarmnav/internal/navigation"
)

// ShipRadius is the Halite II ship radius, used when a scenario omits one.
const ShipRadius = 0.5

// Scenario is a board snapshot plus the navigation requests to run on it.
type Scenario struct {
	Snapshot *Snapshot
	Requests []RequestSpec
}

// RequestSpec is one scripted request. Exactly one of Cell, Planet or Target
// is set, unless the request is an undock.
type RequestSpec struct {
	Ship     int                  `yaml:"ship"`
	Cell     *CellSpec            `yaml:"cell,omitempty"`
	Planet   *int                 `yaml:"planet,omitempty"`
	Target   *int                 `yaml:"target,omitempty"` // Ship to intercept
	Category *navigation.Category `yaml:"category,omitempty"`
	Fallback *navigation.Category `yaml:"fallback,omitempty"`
	Dock     bool                 `yaml:"dock,omitempty"`
	Undock   bool                 `yaml:"undock,omitempty"`
}

// CellSpec is a destination in board coordinates.
type CellSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Cell returns the navigation cell at (X, Y).
func (c CellSpec) Cell() navigation.Cell {
	return navigation.Cell{Row: c.Y, Col: c.X}
}

type scenarioFile struct {
	Board struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"board"`
	Me       int           `yaml:"me"`
	Planets  []entityFile  `yaml:"planets"`
	Ships    []entityFile  `yaml:"ships"`
	Requests []RequestSpec `yaml:"requests"`
}

type entityFile struct {
	ID          int      `yaml:"id"`
	X           float64  `yaml:"x"`
	Y           float64  `yaml:"y"`
	Radius      *float64 `yaml:"radius"`
	Owner       *int     `yaml:"owner"`
	Health      int      `yaml:"health"`
	Docked      bool     `yaml:"docked"`
	DockedShips []int    `yaml:"docked_ships"`
	Spots       int      `yaml:"docking_spots"`
}

func (f entityFile) entity(defaultRadius float64) *Entity {
	e := &Entity{
		ID:          f.ID,
		X:           f.X,
		Y:           f.Y,
		Radius:      defaultRadius,
		Owner:       NoOwner,
		Health:      f.Health,
		Docked:      f.Docked,
		DockedShips: f.DockedShips,

		DockingSpots: f.Spots,
	}
	if f.Radius != nil {
		e.Radius = *f.Radius
	}
	if f.Owner != nil {
		e.Owner = *f.Owner
	}
	return e
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes a YAML scenario and checks every request against
// the board it describes.
func ParseScenario(data []byte) (*Scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	planets := make([]*Entity, len(f.Planets))
	for i, p := range f.Planets {
		planets[i] = p.entity(0)
	}
	ships := make([]*Entity, len(f.Ships))
	for i, sh := range f.Ships {
		ships[i] = sh.entity(ShipRadius)
	}

	snap, err := NewSnapshot(f.Board.Width, f.Board.Height, f.Me, planets, ships)
	if err != nil {
		return nil, err
	}

	for i, r := range f.Requests {
		if err := r.validate(snap); err != nil {
			return nil, fmt.Errorf("%w: request %d: %w", ErrInvalidScenario, i, err)
		}
	}

	return &Scenario{Snapshot: snap, Requests: f.Requests}, nil
}

func (r RequestSpec) validate(snap *Snapshot) error {
	ship, err := snap.Ship(r.Ship)
	if err != nil {
		return err
	}

	targets := 0
	if r.Cell != nil {
		targets++
		if !snap.Board().Contains(r.Cell.Cell()) {
			return fmt.Errorf("cell (%d,%d) is off the board", r.Cell.X, r.Cell.Y)
		}
	}
	if r.Planet != nil {
		targets++
		if _, err := snap.Planet(*r.Planet); err != nil {
			return err
		}
	}
	if r.Target != nil {
		targets++
		if _, err := snap.Ship(*r.Target); err != nil {
			return err
		}
	}
	if r.Undock {
		if targets != 0 || r.Dock {
			return fmt.Errorf("undock takes no target")
		}
		if !ship.Docked {
			return fmt.Errorf("ship %d is not docked", ship.ID)
		}
		return nil
	}
	if targets != 1 {
		return fmt.Errorf("want exactly one of cell, planet or target, got %d", targets)
	}
	if r.Dock && r.Planet == nil {
		return fmt.Errorf("dock needs a planet")
	}
	return nil
}
